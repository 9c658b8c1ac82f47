package engine

import "time"

// BirthdayEntry is a profile reduced to what the birthdays table displays.
type BirthdayEntry struct {
	// UID is the deterministic identifier shared with the calendar and vCard exports.
	UID string

	// Name is the display name (first and last name).
	Name string

	// DateOfBirth is the parsed birth date.
	DateOfBirth time.Time

	// NextOccurrence is the date of the birthday for the current or next year.
	// This is the primary sorting key of the birthdays table.
	NextOccurrence time.Time

	// AgeNext is the age the person will turn at NextOccurrence.
	AgeNext int
}
