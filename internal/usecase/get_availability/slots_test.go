package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	"github.com/branchmaster/BM-BookingService/pkg/types"
)

// Понедельник
var monday = time.Date(2025, time.October, 13, 0, 0, 0, 0, time.UTC)

func hours(opening, closing string) *domain.OperatingHours {
	return &domain.OperatingHours{
		DayOfWeek:   int(monday.Weekday()),
		OpeningTime: types.TimeString(opening),
		ClosingTime: types.TimeString(closing),
	}
}

func availability(dayOfWeek int, start, end string) *domain.ResourceAvailability {
	return &domain.ResourceAvailability{
		DayOfWeek: dayOfWeek,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func booking(date time.Time, start, end string) *domain.Appointment {
	return &domain.Appointment{
		AppointmentDate: date,
		StartTime:       types.TimeString(start),
		EndTime:         types.TimeString(end),
		Status:          domain.StatusBooked,
	}
}

func TestSlotStarts(t *testing.T) {
	window := domain.TimeRange{Start: "09:00", End: "17:00"}
	starts := slotStarts(window, 60)
	require.Len(t, starts, 8)
	assert.Equal(t, 9*60, starts[0])
	assert.Equal(t, 16*60, starts[7])

	// Окно короче слота не дает ни одного слота
	short := domain.TimeRange{Start: "09:00", End: "09:20"}
	assert.Empty(t, slotStarts(short, 30))

	// Последний слот должен целиком помещаться в окно
	uneven := domain.TimeRange{Start: "09:00", End: "10:45"}
	assert.Equal(t, []int{540, 570, 600}, slotStarts(uneven, 30))
}

func TestHoursForDate(t *testing.T) {
	week := []*domain.OperatingHours{
		{DayOfWeek: 1, OpeningTime: "09:00", ClosingTime: "17:00"},
		{DayOfWeek: 2, Closed: true},
	}

	assert.NotNil(t, hoursForDate(week, monday))
	// Вторник закрыт
	assert.Nil(t, hoursForDate(week, monday.AddDate(0, 0, 1)))
	// Среды нет в расписании
	assert.Nil(t, hoursForDate(week, monday.AddDate(0, 0, 2)))
}

func TestAggregateDayCapacity_SingleResourceFullDay(t *testing.T) {
	oh := hours("09:00", "17:00")
	availabilities := []*domain.ResourceAvailability{
		availability(1, "09:00", "17:00"),
	}

	capacity := aggregateDayCapacity(monday, oh, 60, availabilities, nil, nil)
	timeslots := renderTimeslots(capacity, 60)

	require.Len(t, timeslots, 8)
	assert.Equal(t, "09:00", timeslots[0].StartTime.String())
	assert.Equal(t, "10:00", timeslots[0].EndTime.String())
	assert.Equal(t, "16:00", timeslots[7].StartTime.String())
	for _, slot := range timeslots {
		assert.Equal(t, domain.SlotAvailable, slot.Status)
	}
}

func TestAggregateDayCapacity_BookingExhaustsSlot(t *testing.T) {
	// Филиал: 30-минутные слоты, понедельник 09:00-11:00,
	// один ресурс 09:00-11:00, одна запись 09:30-10:00
	oh := hours("09:00", "11:00")
	availabilities := []*domain.ResourceAvailability{
		availability(1, "09:00", "11:00"),
	}
	booked := []*domain.Appointment{
		booking(monday, "09:30", "10:00"),
	}

	capacity := aggregateDayCapacity(monday, oh, 30, availabilities, booked, nil)
	timeslots := renderTimeslots(capacity, 30)

	require.Len(t, timeslots, 4)
	assert.Equal(t, domain.SlotAvailable, timeslots[0].Status)   // 09:00
	assert.Equal(t, domain.SlotFullyBooked, timeslots[1].Status) // 09:30
	assert.Equal(t, domain.SlotAvailable, timeslots[2].Status)   // 10:00
	assert.Equal(t, domain.SlotAvailable, timeslots[3].Status)   // 10:30
	assert.Equal(t, "09:30", timeslots[1].StartTime.String())
}

func TestAggregateDayCapacity_TwoResourcesOneBooking(t *testing.T) {
	oh := hours("09:00", "10:00")
	availabilities := []*domain.ResourceAvailability{
		availability(1, "09:00", "10:00"),
		availability(1, "09:00", "10:00"),
	}
	booked := []*domain.Appointment{
		booking(monday, "09:00", "09:30"),
	}

	capacity := aggregateDayCapacity(monday, oh, 30, availabilities, booked, nil)
	timeslots := renderTimeslots(capacity, 30)

	// Второй ресурс еще свободен
	require.Len(t, timeslots, 2)
	assert.Equal(t, domain.SlotAvailable, timeslots[0].Status)
	assert.Equal(t, domain.SlotAvailable, timeslots[1].Status)
}

func TestAggregateDayCapacity_NoResources(t *testing.T) {
	// Сетка рабочего дня существует, но ни один ресурс ее не открыл -
	// слоты отдаются как FULLY_BOOKED, а не пропадают
	oh := hours("09:00", "11:00")

	capacity := aggregateDayCapacity(monday, oh, 60, nil, nil, nil)
	timeslots := renderTimeslots(capacity, 60)

	require.Len(t, timeslots, 2)
	for _, slot := range timeslots {
		assert.Equal(t, domain.SlotFullyBooked, slot.Status)
	}
}

func TestAggregateDayCapacity_OffsetResourceWindowAddsBoundaries(t *testing.T) {
	// Ресурс со смещенным окном шагает от СВОЕГО начала и порождает
	// собственные границы, отсутствующие в сетке рабочего дня
	oh := hours("09:00", "10:00")
	availabilities := []*domain.ResourceAvailability{
		availability(1, "09:15", "10:15"),
	}

	capacity := aggregateDayCapacity(monday, oh, 30, availabilities, nil, nil)
	timeslots := renderTimeslots(capacity, 30)

	// 09:00, 09:30 из сетки (емкость 0) + 09:15, 09:45 от ресурса (емкость 1)
	require.Len(t, timeslots, 4)
	assert.Equal(t, "09:00", timeslots[0].StartTime.String())
	assert.Equal(t, domain.SlotFullyBooked, timeslots[0].Status)
	assert.Equal(t, "09:15", timeslots[1].StartTime.String())
	assert.Equal(t, domain.SlotAvailable, timeslots[1].Status)
	assert.Equal(t, "09:30", timeslots[2].StartTime.String())
	assert.Equal(t, domain.SlotFullyBooked, timeslots[2].Status)
	assert.Equal(t, "09:45", timeslots[3].StartTime.String())
	assert.Equal(t, domain.SlotAvailable, timeslots[3].Status)
}

func TestAggregateDayCapacity_BookingOutsideGridIgnored(t *testing.T) {
	// Запись со смещенным началом вычитает только на существующих границах -
	// новые границы записи не порождают
	oh := hours("09:00", "10:00")
	availabilities := []*domain.ResourceAvailability{
		availability(1, "09:00", "10:00"),
	}
	booked := []*domain.Appointment{
		booking(monday, "09:10", "09:40"),
	}

	capacity := aggregateDayCapacity(monday, oh, 30, availabilities, booked, nil)

	require.Len(t, capacity, 2)
	assert.Equal(t, 1, capacity[9*60])
	assert.Equal(t, 1, capacity[9*60+30])
}

func TestAggregateDayCapacity_WholeDayUnavailability(t *testing.T) {
	oh := hours("09:00", "10:00")
	availabilities := []*domain.ResourceAvailability{
		availability(1, "09:00", "10:00"),
	}
	unavailabilities := []*domain.ResourceUnavailability{
		{AvailableResourceID: 1, Date: monday}, // весь день
	}

	capacity := aggregateDayCapacity(monday, oh, 30, availabilities, nil, unavailabilities)
	timeslots := renderTimeslots(capacity, 30)

	require.Len(t, timeslots, 2)
	for _, slot := range timeslots {
		assert.Equal(t, domain.SlotFullyBooked, slot.Status)
	}
}

func TestAggregateDayCapacity_PartialUnavailability(t *testing.T) {
	start := types.TimeString("09:00")
	end := types.TimeString("09:30")

	oh := hours("09:00", "10:00")
	availabilities := []*domain.ResourceAvailability{
		availability(1, "09:00", "10:00"),
	}
	unavailabilities := []*domain.ResourceUnavailability{
		{AvailableResourceID: 1, Date: monday, StartTime: &start, EndTime: &end},
	}

	capacity := aggregateDayCapacity(monday, oh, 30, availabilities, nil, unavailabilities)
	timeslots := renderTimeslots(capacity, 30)

	require.Len(t, timeslots, 2)
	assert.Equal(t, domain.SlotFullyBooked, timeslots[0].Status) // 09:00
	assert.Equal(t, domain.SlotAvailable, timeslots[1].Status)   // 09:30
}

func TestAggregateDayCapacity_NegativeCapacityStaysFullyBooked(t *testing.T) {
	// Блокировка на весь день плюс запись уводят емкость в минус -
	// слот остается FULLY_BOOKED без округления до нуля
	oh := hours("09:00", "09:30")
	availabilities := []*domain.ResourceAvailability{
		availability(1, "09:00", "09:30"),
	}
	booked := []*domain.Appointment{
		booking(monday, "09:00", "09:30"),
	}
	unavailabilities := []*domain.ResourceUnavailability{
		{AvailableResourceID: 1, Date: monday},
	}

	capacity := aggregateDayCapacity(monday, oh, 30, availabilities, booked, unavailabilities)

	require.Len(t, capacity, 1)
	assert.Equal(t, -1, capacity[9*60])

	timeslots := renderTimeslots(capacity, 30)
	require.Len(t, timeslots, 1)
	assert.Equal(t, domain.SlotFullyBooked, timeslots[0].Status)
}

func TestAggregateDayCapacity_IgnoresOtherDays(t *testing.T) {
	oh := hours("09:00", "10:00")
	availabilities := []*domain.ResourceAvailability{
		availability(1, "09:00", "10:00"),
		availability(2, "09:00", "10:00"), // вторник - не в счет
	}
	booked := []*domain.Appointment{
		booking(monday.AddDate(0, 0, 1), "09:00", "09:30"), // запись на вторник
	}

	capacity := aggregateDayCapacity(monday, oh, 30, availabilities, booked, nil)

	assert.Equal(t, 1, capacity[9*60])
	assert.Equal(t, 1, capacity[9*60+30])
}

func TestAggregateDayCapacity_DateBoundedResource(t *testing.T) {
	nextMonth := monday.AddDate(0, 1, 0)

	oh := hours("09:00", "10:00")
	availabilities := []*domain.ResourceAvailability{
		{
			DayOfWeek: 1,
			StartTime: "09:00",
			EndTime:   "10:00",
			StartDate: &nextMonth, // начинает действовать позже
		},
	}

	capacity := aggregateDayCapacity(monday, oh, 30, availabilities, nil, nil)

	assert.Equal(t, 0, capacity[9*60])
	assert.Equal(t, 0, capacity[9*60+30])
}

func TestRenderTimeslots_SortedAscending(t *testing.T) {
	capacity := map[int]int{600: 1, 540: 0, 570: 2}

	timeslots := renderTimeslots(capacity, 30)

	require.Len(t, timeslots, 3)
	assert.Equal(t, "09:00", timeslots[0].StartTime.String())
	assert.Equal(t, "09:30", timeslots[1].StartTime.String())
	assert.Equal(t, "10:00", timeslots[2].StartTime.String())
}
