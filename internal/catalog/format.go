package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

// FormatVenueTable writes venues as a table with columns ID, NAME, TYPE,
// PRICE/H, CAPACITY and ADDRESS. Returns the number of rows written.
func FormatVenueTable(w io.Writer, venues []sportzone.Venue) int {
	if len(venues) == 0 {
		fmt.Fprintln(w, "No venues found")
		return 0
	}

	fmt.Fprintf(w, "%-5s %-28s %-10s %12s %8s  %s\n", "ID", "NAME", "TYPE", "PRICE/H", "CAPACITY", "ADDRESS")
	fmt.Fprintf(w, "%-5s %-28s %-10s %12s %8s  %s\n", "-----", strings.Repeat("-", 28), "----------", "------------", "--------", strings.Repeat("-", 32))

	for _, v := range venues {
		fmt.Fprintf(w, "%-5d %s %s %12s %8d  %s\n",
			v.ID,
			pad(truncate(v.Name, 28), 28),
			pad(truncate(dash(v.Type), 10), 10),
			FormatPrice(v.Price.Float64()),
			v.Capacity,
			truncate(dash(v.Address), 32),
		)
	}

	fmt.Fprintf(w, "\n%d %s found\n", len(venues), plural(len(venues), "venue", "venues"))
	return len(venues)
}

// FormatVenueDetail writes one venue as a labelled block including its images
// in display order.
func FormatVenueDetail(w io.Writer, v *sportzone.Venue) {
	fmt.Fprintf(w, "%s (#%d)\n\n", v.Name, v.ID)

	rows := [][2]string{
		{"Type", dash(v.Type)},
		{"Description", dash(v.Description)},
		{"Address", dash(v.Address)},
		{"Coordinates", fmt.Sprintf("%.6f, %.6f", v.Latitude.Float64(), v.Longitude.Float64())},
		{"Price per hour", FormatPrice(v.Price.Float64())},
		{"Capacity", strconv.Itoa(v.Capacity)},
	}
	if v.OwnerID > 0 {
		rows = append(rows, [2]string{"Manager", "#" + strconv.Itoa(v.OwnerID)})
	}
	WriteFields(w, rows)

	images := append([]sportzone.VenueImage(nil), v.Images...)
	sort.SliceStable(images, func(i, j int) bool { return images[i].Order < images[j].Order })

	fmt.Fprintf(w, "\nImages (%d):\n", len(images))
	if len(images) == 0 {
		if v.ImageURL != "" {
			fmt.Fprintf(w, "  * %s\n", v.ImageURL)
		} else {
			fmt.Fprintln(w, "  none")
		}
		return
	}
	for i, img := range images {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %s\n", marker, img.URL)
	}
}

// WriteFields writes label/value pairs with aligned values.
func WriteFields(w io.Writer, rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, utf8.RuneCountInString(r[0]))
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s  %s\n", pad(r[0]+":", width+1), r[1])
	}
}

// FormatReservationTable writes reservations as a table.
func FormatReservationTable(w io.Writer, reservations []sportzone.Reservation) int {
	if len(reservations) == 0 {
		fmt.Fprintln(w, "No reservations found")
		return 0
	}

	fmt.Fprintf(w, "%-5s %-28s %-10s %-13s %s\n", "ID", "VENUE", "DATE", "TIME", "STATUS")
	fmt.Fprintf(w, "%-5s %-28s %-10s %-13s %s\n", "-----", strings.Repeat("-", 28), "----------", "-------------", "----------")

	for _, r := range reservations {
		venue := "#" + strconv.Itoa(r.VenueID)
		if r.Venue != nil && r.Venue.Name != "" {
			venue = r.Venue.Name
		}
		status := "-"
		if r.Status != nil && r.Status.Name != "" {
			status = r.Status.Name
		} else if r.StatusID > 0 {
			status = "#" + strconv.Itoa(r.StatusID)
		}
		fmt.Fprintf(w, "%-5d %s %-10s %-13s %s\n",
			r.ID,
			pad(truncate(venue, 28), 28),
			r.Date,
			r.Start+"-"+r.End,
			status,
		)
	}

	fmt.Fprintf(w, "\n%d %s found\n", len(reservations), plural(len(reservations), "reservation", "reservations"))
	return len(reservations)
}

// FormatReportTable writes reports as a table.
func FormatReportTable(w io.Writer, reports []sportzone.Report) int {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No reports found")
		return 0
	}

	fmt.Fprintf(w, "%-5s %-22s %-18s %-10s %-5s %s\n", "ID", "VENUE", "REPORTED BY", "DATE", "PHOTO", "DESCRIPTION")
	fmt.Fprintf(w, "%-5s %-22s %-18s %-10s %-5s %s\n", "-----", strings.Repeat("-", 22), strings.Repeat("-", 18), "----------", "-----", strings.Repeat("-", 40))

	for _, r := range reports {
		venue, user := "-", "-"
		if r.Venue != nil {
			venue = r.Venue.Name
		}
		if r.User != nil {
			user = dash(r.User.Name)
		}
		photo := "no"
		if r.ImageURL != "" {
			photo = "yes"
		}
		fmt.Fprintf(w, "%-5d %s %s %-10s %-5s %s\n",
			r.ID,
			pad(truncate(venue, 22), 22),
			pad(truncate(user, 18), 18),
			formatDate(r.ReportedAt),
			photo,
			firstLine(r.Description, 40),
		)
	}

	fmt.Fprintf(w, "\n%d %s found\n", len(reports), plural(len(reports), "report", "reports"))
	return len(reports)
}

// FormatJSON writes v as indented JSON followed by a newline.
func FormatJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

// FormatJSONL writes each item as a single JSON line.
func FormatJSONL[T any](w io.Writer, items []T) error {
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

// FormatPrice renders an amount in whole pesos with thousands separators.
func FormatPrice(amount float64) string {
	if amount <= 0 {
		return "-"
	}
	s := strconv.FormatInt(int64(amount+0.5), 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "$" + b.String()
}

// formatDate trims an RFC3339 timestamp to its date.
func formatDate(ts string) string {
	if ts == "" {
		return "-"
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Format("2006-01-02")
	}
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// firstLine returns the first non-empty line of s truncated to n runes.
func firstLine(s string, n int) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return truncate(trimmed, n)
		}
	}
	return "-"
}

// truncate shortens s to n runes, ending with "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes. fmt's width counts bytes, which
// misaligns accented names.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
