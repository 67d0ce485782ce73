package shared

// DateLayout is the wire format for calendar dates (birth_date, publish_date).
const DateLayout = "2006-01-02"
