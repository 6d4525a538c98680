package entities

// ReminderEmailData feeds the reminder email template.
type ReminderEmailData struct {
	OwnerName   string
	PetName     string
	TaskName    string
	Message     string
	CurrentYear int
}

// ConfirmationEmailData feeds the booking confirmation/cancellation email.
type ConfirmationEmailData struct {
	OwnerName     string
	PetName       string
	Reference     string
	DateFormatted string
	Slot          string
	Status        string
	CurrentYear   int
}
