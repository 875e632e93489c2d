package get_availability

import (
	"sort"
	"time"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	"github.com/branchmaster/BM-BookingService/pkg/types"
)

// hoursForDate возвращает часы работы филиала на конкретную дату
// Возвращает nil, если записи на этот день недели нет или день закрыт -
// вызывающий пропускает такую дату целиком, не порождая слотов
func hoursForDate(week []*domain.OperatingHours, date time.Time) *domain.OperatingHours {
	dayOfWeek := int(date.Weekday()) // 0=Sunday .. 6=Saturday

	for _, oh := range week {
		if oh.DayOfWeek == dayOfWeek && !oh.Closed {
			return oh
		}
	}
	return nil
}

// slotStarts генерирует начала слотов, шагая от начала окна с фиксированным
// шагом length, пока конец очередного слота не вышел бы за конец окна
// Окно короче одного слота дает пустой результат
func slotStarts(window domain.TimeRange, length int) []int {
	starts := make([]int, 0)
	for t := window.Start.Minutes(); t+length <= window.End.Minutes(); t += length {
		starts = append(starts, t)
	}
	return starts
}

// aggregateDayCapacity строит ёмкость слотов одного дня одним проходом:
//
//  1. границы слотов рабочего дня инициализируются ёмкостью 0;
//  2. каждое окно доступности ресурса шагает от СВОЕГО начала тем же шагом
//     и добавляет +1 на каждую свою границу (границы, которых ещё нет в
//     карте, добавляются - смещённое окно ресурса порождает свою сетку);
//  3. каждая BOOKED-запись шагает от своего начала и вычитает 1 только на
//     уже существующих границах (отсутствующие границы игнорируются);
//  4. блокировка на весь день вычитает 1 на КАЖДОЙ существующей границе
//     независимо от того, какой ресурс её открыл; частичная блокировка
//     шагает по своему окну и вычитает 1 только на существующих границах.
//
// Ёмкость может уйти в минус - это по-прежнему FULLY_BOOKED, без округления до нуля
func aggregateDayCapacity(
	date time.Time,
	hours *domain.OperatingHours,
	timeslotLength int,
	availabilities []*domain.ResourceAvailability,
	booked []*domain.Appointment,
	unavailabilities []*domain.ResourceUnavailability,
) map[int]int {
	capacity := make(map[int]int)

	for _, start := range slotStarts(hours.Window(), timeslotLength) {
		capacity[start] = 0
	}

	dayOfWeek := int(date.Weekday())

	for _, availability := range availabilities {
		if availability.DayOfWeek != dayOfWeek || !availability.CoversDate(date) {
			continue
		}
		for _, start := range slotStarts(availability.Window(), timeslotLength) {
			capacity[start]++
		}
	}

	for _, appt := range booked {
		if !isSameDay(appt.AppointmentDate, date) {
			continue
		}
		for _, start := range slotStarts(appt.Window(), timeslotLength) {
			if _, ok := capacity[start]; ok {
				capacity[start]--
			}
		}
	}

	for _, unavailability := range unavailabilities {
		if !isSameDay(unavailability.Date, date) {
			continue
		}

		if unavailability.IsWholeDay() {
			for start := range capacity {
				capacity[start]--
			}
			continue
		}

		window := domain.TimeRange{Start: *unavailability.StartTime, End: *unavailability.EndTime}
		for _, start := range slotStarts(window, timeslotLength) {
			if _, ok := capacity[start]; ok {
				capacity[start]--
			}
		}
	}

	return capacity
}

// renderTimeslots превращает карту ёмкости в упорядоченный список слотов
// Слот с ёмкостью <= 0 существует, но исчерпан - он отдаётся как FULLY_BOOKED,
// в отличие от слота, которого нет вовсе (ни один ресурс его не открывал)
func renderTimeslots(capacity map[int]int, timeslotLength int) []domain.Timeslot {
	starts := make([]int, 0, len(capacity))
	for start := range capacity {
		starts = append(starts, start)
	}
	sort.Ints(starts)

	timeslots := make([]domain.Timeslot, 0, len(starts))
	for _, start := range starts {
		status := domain.SlotAvailable
		if capacity[start] <= 0 {
			status = domain.SlotFullyBooked
		}

		timeslots = append(timeslots, domain.Timeslot{
			StartTime: types.FromMinutes(start),
			EndTime:   types.FromMinutes(start + timeslotLength),
			Status:    status,
		})
	}

	return timeslots
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
