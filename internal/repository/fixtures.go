package repository

import "campervan/internal/entities"

// DefaultStations is the station fixture served by the mock API.
func DefaultStations() []entities.Station {
	return []entities.Station{
		{ID: 1, Name: "Berlin Central Station", City: "Berlin", Country: "Germany"},
		{ID: 2, Name: "Munich Airport Hub", City: "Munich", Country: "Germany"},
		{ID: 3, Name: "Hamburg Port Terminal", City: "Hamburg", Country: "Germany"},
		{ID: 4, Name: "Frankfurt Main Station", City: "Frankfurt", Country: "Germany"},
		{ID: 5, Name: "Cologne Downtown", City: "Cologne", Country: "Germany"},
		{ID: 6, Name: "Stuttgart City Center", City: "Stuttgart", Country: "Germany"},
		{ID: 7, Name: "Düsseldorf Airport", City: "Düsseldorf", Country: "Germany"},
		{ID: 8, Name: "Leipzig Central", City: "Leipzig", Country: "Germany"},
		{ID: 9, Name: "Dresden Old Town", City: "Dresden", Country: "Germany"},
		{ID: 10, Name: "Nuremberg Station", City: "Nuremberg", Country: "Germany"},
	}
}

// DefaultBookings is the booking fixture served by the mock API. Every
// booking carries its detail fields so list and detail views agree.
func DefaultBookings() []entities.BookingDetails {
	return []entities.BookingDetails{
		{
			Booking: entities.Booking{
				ID: "BK001", CustomerName: "John Smith",
				StartDate: "2025-08-15", EndDate: "2025-08-22",
				PickupStationID: 1, ReturnStationID: 1,
				VehicleModel: "VW California Ocean", VehiclePlate: "B-VW 1234",
				Status: entities.StatusConfirmed, PickupTime: "10:00", ReturnTime: "16:00",
			},
			CustomerEmail: "john.smith@email.com", CustomerPhone: "+49 30 12345678",
			VehicleColor: "White", TotalPrice: 1890, Currency: "EUR", BookingDate: "2025-07-01",
			SpecialRequests: "Child seat required", InsuranceType: "Premium Coverage",
		},
		{
			Booking: entities.Booking{
				ID: "BK002", CustomerName: "Sarah Johnson",
				StartDate: "2025-08-16", EndDate: "2025-08-20",
				PickupStationID: 1, ReturnStationID: 2,
				VehicleModel: "Mercedes Marco Polo", VehiclePlate: "M-MB 5678",
				Status: entities.StatusConfirmed, PickupTime: "14:00", ReturnTime: "11:00",
			},
			CustomerEmail: "sarah.johnson@email.com", CustomerPhone: "+49 89 87654321",
			VehicleColor: "Silver", TotalPrice: 1240, Currency: "EUR", BookingDate: "2025-07-02",
			SpecialRequests: "GPS navigation system", InsuranceType: "Standard Coverage",
		},
		{
			Booking: entities.Booking{
				ID: "BK003", CustomerName: "Mike Wilson",
				StartDate: "2025-08-17", EndDate: "2025-08-24",
				PickupStationID: 1, ReturnStationID: 1,
				VehicleModel: "Ford Transit Custom", VehiclePlate: "B-FD 9012",
				Status: entities.StatusPending, PickupTime: "09:00", ReturnTime: "18:00",
			},
			CustomerEmail: "mike.wilson@email.com", CustomerPhone: "+49 30 11223344",
			VehicleColor: "Blue", TotalPrice: 2100, Currency: "EUR", BookingDate: "2025-07-03",
			SpecialRequests: "Bike rack needed", InsuranceType: "Premium Coverage",
		},
		{
			Booking: entities.Booking{
				ID: "BK004", CustomerName: "Emma Davis",
				StartDate: "2025-08-18", EndDate: "2025-08-21",
				PickupStationID: 2, ReturnStationID: 1,
				VehicleModel: "Peugeot Boxer", VehiclePlate: "M-PG 3456",
				Status: entities.StatusConfirmed, PickupTime: "12:00", ReturnTime: "15:00",
			},
			CustomerEmail: "emma.davis@email.com", CustomerPhone: "+49 89 55667788",
			VehicleColor: "Red", TotalPrice: 960, Currency: "EUR", BookingDate: "2025-07-04",
			SpecialRequests: "None", InsuranceType: "Basic Coverage",
		},
		{
			Booking: entities.Booking{
				ID: "BK005", CustomerName: "David Brown",
				StartDate: "2025-08-19", EndDate: "2025-08-26",
				PickupStationID: 1, ReturnStationID: 3,
				VehicleModel: "Fiat Ducato", VehiclePlate: "B-FT 7890",
				Status: entities.StatusConfirmed, PickupTime: "08:00", ReturnTime: "17:00",
			},
			CustomerEmail: "david.brown@email.com", CustomerPhone: "+49 40 99887766",
			VehicleColor: "Gray", TotalPrice: 2240, Currency: "EUR", BookingDate: "2025-07-05",
			SpecialRequests: "Extra bedding set", InsuranceType: "Premium Coverage",
		},
		{
			Booking: entities.Booking{
				ID: "BK006", CustomerName: "Lisa Anderson",
				StartDate: "2025-08-25", EndDate: "2025-08-30",
				PickupStationID: 2, ReturnStationID: 2,
				VehicleModel: "Renault Master", VehiclePlate: "B-RN 2468",
				Status: entities.StatusConfirmed, PickupTime: "11:00", ReturnTime: "14:00",
			},
			CustomerEmail: "lisa.anderson@email.com", CustomerPhone: "+49 89 24681357",
			VehicleColor: "Black", TotalPrice: 1475, Currency: "EUR", BookingDate: "2025-07-06",
			SpecialRequests: "None", InsuranceType: "Standard Coverage",
		},
	}
}
