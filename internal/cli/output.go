package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/format"
)

func printNotices(w io.Writer, notices []domain.Notice) {
	for _, n := range notices {
		prefix := "•"
		switch n.Kind {
		case domain.NoticeSuccess:
			prefix = "✔"
		case domain.NoticeError:
			prefix = "✖"
		}
		fmt.Fprintf(w, "%s %s\n", prefix, n.Message)
	}
}

func printPropertyTable(w io.Writer, list []domain.Property, userID domain.ID) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tTYPE\tCITY\tBEDS\tSTATUS\t")
	for i := range list {
		p := &list[i]
		title := format.TruncateText(p.Title, 40)
		if p.IsFavoritedBy(userID) {
			title = "♥ " + title
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t\n",
			p.ID, title, format.FormatPrice(p.Price), format.TypeLabel(p.Type),
			p.Location.City, p.Details.Bedrooms, format.StatusLabel(p.Status))
	}
	return tw.Flush()
}

func printProperty(w io.Writer, p *domain.Property, recipient domain.Recipient, userID domain.ID) {
	fmt.Fprintf(w, "%s\n%s\n\n", p.Title, strings.Repeat("=", len([]rune(p.Title))))
	fmt.Fprintf(w, "Price:     %s\n", format.FormatPrice(p.Price))
	fmt.Fprintf(w, "Type:      %s (%s)\n", format.TypeLabel(p.Type), format.StatusLabel(p.Status))
	fmt.Fprintf(w, "Location:  %s, %s, %s %s\n", p.Location.Address, p.Location.City, p.Location.State, p.Location.ZipCode)
	fmt.Fprintf(w, "Details:   %d bd, %d ba, %s sqft\n", p.Details.Bedrooms, p.Details.Bathrooms, format.FormatNumber(int64(p.Details.Sqft)))
	if p.Details.YearBuilt > 0 {
		fmt.Fprintf(w, "Built:     %d\n", p.Details.YearBuilt)
	}
	if len(p.Amenities) > 0 {
		labels := make([]string, 0, len(p.Amenities))
		for _, a := range p.Amenities {
			labels = append(labels, format.AmenityLabel(a))
		}
		fmt.Fprintf(w, "Amenities: %s\n", strings.Join(labels, ", "))
	}
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Listed:    %s\n", format.FormatDate(p.CreatedAt))
	}
	if p.IsFavoritedBy(userID) {
		fmt.Fprintln(w, "Saved:     ♥ in your favorites")
	}
	fmt.Fprintf(w, "Contact:   %s (%s) %s\n", recipient.Name, format.RecipientLabel(recipient.Type), recipient.Email)
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
}
