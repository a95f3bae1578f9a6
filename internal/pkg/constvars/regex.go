package constvars

const (
	RegexPhoneNumberGeneral = `^\+?[1-9]\d{6,14}$`
	// RegexDateKey matches <year>_<monthIndex0based>_<day> without leading zeros.
	RegexDateKey = `^\d{4}_(?:[0-9]|1[01])_(?:[1-9]|[12][0-9]|3[01])$`
	// RegexSlotTime matches 12-hour labels such as 10:00AM or 09:30 PM.
	RegexSlotTime = `^(?:0?[1-9]|1[0-2]):[0-5][0-9] ?(?:AM|PM|am|pm)$`
)
