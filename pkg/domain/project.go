package domain

// Project is a design project tracked on the dashboard or kept in the archive.
type Project struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Desc         string `json:"desc"`
	Client       string `json:"client"`
	Price        string `json:"price"`
	Deadline     string `json:"deadline"`
	Date         string `json:"date"`
	FigmaURL     string `json:"figmaUrl,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// DeadlineCompleted replaces the deadline of a project archived on completion.
const DeadlineCompleted = "Completed"

// ClientUnspecified is the client label of projects created by a designer.
const ClientUnspecified = "Not specified"
