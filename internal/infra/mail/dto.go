package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}

type LeadAssignedEmailData struct {
	AssigneeName string
	LeadName     string
	LeadStatus   string
}
