package records

import "github.com/deskhook/deskhook/internal/models"

// Document is the structured description body attached to created records,
// in the ticketing system's document format: one paragraph per line.
type Document struct {
	Type    string `json:"type"`
	Version int    `json:"version"`
	Content []Node `json:"content"`
}

type Node struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Content []Node `json:"content,omitempty"`
}

// BuildDescription renders the order summary attached to every created
// record. Line order is fixed; absent values render as "N/A".
func BuildDescription(snap models.CustomerSnapshot, startDate, endDate string) *Document {
	return paragraphs(
		"Customer: "+orNotAvailable(snap.Name),
		"Email: "+orNotAvailable(snap.Email),
		"Phone: "+orNotAvailable(snap.Phone),
		"Company Address: "+orNotAvailable(snap.Address),
		"Amount Paid: "+orNotAvailable(snap.Amount),
		"Start Date: "+startDate,
		"End Date: "+endDate,
	)
}

// BuildConfirmation renders the customer-visible confirmation body that
// references the work item created for the order.
func BuildConfirmation(recordKey string) *Document {
	return paragraphs(
		"Thank you for your purchase. Your onboarding has been scheduled.",
		"Reference: "+recordKey,
	)
}

func paragraphs(lines ...string) *Document {
	doc := &Document{Type: "doc", Version: 1}
	for _, line := range lines {
		doc.Content = append(doc.Content, Node{
			Type: "paragraph",
			Content: []Node{
				{Type: "text", Text: line},
			},
		})
	}
	return doc
}

func orNotAvailable(s string) string {
	if s == "" {
		return models.NotAvailable
	}
	return s
}
