package gymstore

import "github.com/ironhouse-gym/gym-admin/internal/domain"

// SeedData is the sample data every process starts with.
func SeedData() Snapshot {
	d := domain.MustDate
	return Snapshot{
		Memberships: []domain.Membership{
			{ID: 1, Type: "Silver", Duration: 30, Price: 300},
			{ID: 2, Type: "Gold", Duration: 90, Price: 800},
			{ID: 3, Type: "Platinum", Duration: 365, Price: 2500},
		},
		Members: []domain.Member{
			{ID: 1, FirstName: "John", LastName: "Doe", Gender: "M", DateOfBirth: d("1990-05-15"), RegistrationDate: d("2025-01-10"), MembershipID: 2, Phone: "555-0101", Email: "john@example.com"},
			{ID: 2, FirstName: "Jane", LastName: "Smith", Gender: "F", DateOfBirth: d("1985-08-22"), RegistrationDate: d("2025-02-01"), MembershipID: 1, Phone: "555-0102", Email: "jane@example.com"},
			{ID: 3, FirstName: "Ali", LastName: "Veli", Gender: "M", DateOfBirth: d("2000-01-10"), RegistrationDate: d("2025-03-05"), MembershipID: 3, Phone: "555-0103", Email: "ali@example.com"},
		},
		Trainers: []domain.Trainer{
			{ID: 1, FirstName: "Mike", LastName: "Tyson", Specialization: "Boxing", Phone: "555-9999", Email: "mike@gym.com"},
			{ID: 2, FirstName: "Sarah", LastName: "Connor", Specialization: "Cardio", Phone: "555-8888", Email: "sarah@gym.com"},
		},
		Classes: []domain.Class{
			{ID: 1, Name: "Morning Boxing", Schedule: d("2025-12-01"), Capacity: 20, TrainerID: 1},
			{ID: 2, Name: "Evening Yoga", Schedule: d("2025-12-01"), Capacity: 15, TrainerID: 2},
		},
		Enrollments: []domain.Enrollment{
			{ID: 1, MemberID: 1, ClassID: 1, EnrollmentDate: d("2025-12-01")},
			{ID: 2, MemberID: 2, ClassID: 1, EnrollmentDate: d("2025-12-02")},
		},
		Payments: []domain.Payment{
			{ID: 1, MemberID: 1, Amount: 800, PaymentDate: d("2025-11-20"), Method: "Credit Card"},
			{ID: 2, MemberID: 2, Amount: 300, PaymentDate: d("2025-11-21"), Method: "Cash"},
		},
	}
}
