package api

type Club struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Tags           []string `json:"tags"`
	Deadline       Time     `json:"deadline"`
	ContactInfo    string   `json:"contact_info"`
	IsRecruiting   bool     `json:"is_recruiting"`
	OpenPositions  []string `json:"open_positions"`
	SkillsRequired []string `json:"skills_required"`
	TotalMembers   int      `json:"total_members"`
	InterviewDate  Time     `json:"interview_date"`
}

type Profile struct {
	ID              int    `json:"id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Major           string `json:"major"`
	Interests       string `json:"interests"`
	Skills          string `json:"skills"`
	Resume          string `json:"resume"`
	PersonalDetails string `json:"personal_details"`
	ProfileComplete bool   `json:"profile_complete"`
}

type ProfileUpdate struct {
	Major           string `json:"major"`
	Interests       string `json:"interests"`
	Skills          string `json:"skills"`
	Resume          string `json:"resume"`
	PersonalDetails string `json:"personal_details"`
}

type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"user_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

type Recommendation struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

type StudentApplication struct {
	ID        int    `json:"id"`
	ClubName  string `json:"club_name"`
	Status    string `json:"status"`
	Timestamp Time   `json:"timestamp"`
}

type ClubApplication struct {
	ID          int    `json:"id"`
	StudentName string `json:"student_name"`
	StudentID   int    `json:"student_id"`
	Status      string `json:"status"`
	Timestamp   Time   `json:"timestamp"`
}

type Event struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Date     Time   `json:"date"`
	Location string `json:"location"`
	ClubName string `json:"club_name,omitempty"`
}

type Attendee struct {
	StudentID   int    `json:"student_id"`
	StudentName string `json:"student_name"`
	Timestamp   Time   `json:"timestamp"`
}

type Attendees struct {
	EventName string     `json:"event_name"`
	Attendees []Attendee `json:"attendees"`
}

type Feedback struct {
	ID          int    `json:"id"`
	StudentName string `json:"student_name"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	Timestamp   Time   `json:"timestamp"`
}

type Buzz struct {
	ClubName  string `json:"club_name"`
	BuzzScore int    `json:"buzz_score"`
}

type QRCode struct {
	ImageBase64 string `json:"image_base64"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatReply struct {
	Response *string `json:"response"`
}

type clubEventsResp struct {
	Events []Event `json:"events"`
}

type buzzResp struct {
	BuzzData []Buzz `json:"buzz_data"`
}

type recommendationsResp struct {
	Recommendations []Recommendation `json:"recommendations"`
}
