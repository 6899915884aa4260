package backfill

import (
	"fmt"
	"time"
)

// Month is one year-month slice of the menu archive.
type Month struct {
	Year  int
	Month time.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Prefix is where the downloader writes that month's payloads.
func (m Month) Prefix(dispensary string) string {
	return fmt.Sprintf("dispensaries/%s/%04d/%02d/", dispensary, m.Year, int(m.Month))
}

func parseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("month %q: want YYYY-MM: %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthSequence expands the slice selection flags into concrete months,
// oldest first. months > 0 selects the last N months including the one
// containing now; otherwise start/end give an inclusive YYYY-MM range;
// with neither, the current month alone.
func MonthSequence(start, end string, months int, now time.Time) ([]Month, error) {
	if months > 0 {
		seq := make([]Month, 0, months)
		y, m := now.Year(), now.Month()
		for i := 0; i < months; i++ {
			seq = append(seq, Month{Year: y, Month: m})
			m--
			if m == 0 {
				m = time.December
				y--
			}
		}
		// oldest first
		for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
			seq[i], seq[j] = seq[j], seq[i]
		}
		return seq, nil
	}

	if start != "" && end != "" {
		from, err := parseMonth(start)
		if err != nil {
			return nil, err
		}
		to, err := parseMonth(end)
		if err != nil {
			return nil, err
		}

		var seq []Month
		y, m := from.Year, from.Month
		for y < to.Year || (y == to.Year && m <= to.Month) {
			seq = append(seq, Month{Year: y, Month: m})
			m++
			if m > time.December {
				m = time.January
				y++
			}
		}
		return seq, nil
	}

	return []Month{{Year: now.Year(), Month: now.Month()}}, nil
}
