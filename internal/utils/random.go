package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
)

var firstNames = []string{
	"Alice", "Ben", "Chloe", "Daniel", "Emma", "Felix", "Grace", "Harry",
	"Isla", "Jack", "Katie", "Liam", "Mia", "Noah", "Olivia", "Poppy",
	"Quinn", "Rosie", "Sam", "Tom",
}

var lastNames = []string{
	"Adams", "Brown", "Clarke", "Davies", "Evans", "Foster", "Green",
	"Hughes", "Irwin", "Jones", "Khan", "Lewis", "Murphy", "Nolan",
	"Owens", "Patel", "Reid", "Smith", "Taylor", "Walker",
}

var skillPool = []string{"management", "chef", "kitchen", "bartender", "server"}

func GenerateRandomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

// GenerateRandomSkills returns one to three distinct skills.
func GenerateRandomSkills() []string {
	shuffled := append([]string{}, skillPool...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:rand.Intn(3)+1]
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// GenerateRandomAvailability marks four to seven weekdays with a single
// wide window each.
func GenerateRandomAvailability() map[string][]domain.TimeWindow {
	availability := make(map[string][]domain.TimeWindow)

	days := append([]string{}, weekdays...)
	rand.Shuffle(len(days), func(i, j int) {
		days[i], days[j] = days[j], days[i]
	})
	n := rand.Intn(4) + 4

	for _, day := range days[:n] {
		startHour := rand.Intn(4) + 7 // 07:00 - 10:00
		endHour := startHour + rand.Intn(6) + 6
		if endHour > 23 {
			endHour = 23
		}
		availability[day] = []domain.TimeWindow{{
			StartTime: fmt.Sprintf("%02d:00", startHour),
			EndTime:   fmt.Sprintf("%02d:00", endHour),
		}}
	}

	return availability
}

func GenerateRandomStaff(businessID int64) *domain.Staff {
	rate := float64(rand.Intn(15) + 10)
	return &domain.Staff{
		BusinessID:       businessID,
		Name:             GenerateRandomName(),
		Skills:           GenerateRandomSkills(),
		Availability:     GenerateRandomAvailability(),
		ReliabilityScore: float64(rand.Intn(60)+40) / 10, // 4.0 - 10.0
		IsActive:         true,
		HourlyRate:       &rate,
	}
}

func GenerateRandomShift(businessID int64, date time.Time) *domain.Shift {
	startHour := rand.Intn(10) + 8
	endHour := startHour + rand.Intn(5) + 4
	if endHour > 23 {
		endHour = 23
	}
	return &domain.Shift{
		BusinessID:         businessID,
		Date:               date,
		StartTime:          fmt.Sprintf("%02d:00", startHour),
		EndTime:            fmt.Sprintf("%02d:00", endHour),
		RequiredSkill:      skillPool[rand.Intn(len(skillPool))],
		RequiredStaffCount: int32(rand.Intn(3) + 1),
	}
}
