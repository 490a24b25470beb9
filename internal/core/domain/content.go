package domain

import "time"

type FAQ struct {
	Question string
	Answer   string
}

type Testimonial struct {
	Quote    string
	Author   string
	Company  string
	Location string
}

type ContactForm struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required,looseemail"`
	Company string `form:"company"`
	Phone   string `form:"phone" validate:"omitempty,digits10"`
	Message string `form:"message" validate:"required"`
}

type ContactMessage struct {
	ContactForm
	ReceivedAt time.Time
}
