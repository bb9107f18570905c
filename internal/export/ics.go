package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/engine"
)

const icsDate = "20060102"

// Session is one scheduled workout of a daily plan.
type Session struct {
	Date       domain.Date
	DayIndex   int
	ProgramDay int
	Exercises  []domain.ProgramExercise
}

// Sessions lists the plan's workout days between its start and end dates.
// Program days are used in rotation; a plan without a program still gets
// its workout days, with no exercises.
func Sessions(p *domain.DailyPlan) []Session {
	var out []Session
	programDays := 0
	if p.TrainingProgram != nil {
		programDays = p.TrainingProgram.WorkoutDays
	}
	for d := 1; ; d++ {
		date := p.StartDate.AddDays(d - 1)
		if !date.Before(p.EndDate.Time) {
			break
		}
		if !engine.IsWorkoutDay(d) {
			continue
		}
		s := Session{Date: date, DayIndex: d}
		if programDays > 0 {
			s.ProgramDay = len(out)%programDays + 1
			s.Exercises = p.TrainingProgram.ExercisesForDay(s.ProgramDay)
		}
		out = append(out, s)
	}
	return out
}

// WriteICS writes the plan's workout sessions as an iCalendar feed of
// all-day events.
func WriteICS(w io.Writer, p *domain.DailyPlan) error {
	var b strings.Builder
	stamp := p.CreatedAt.UTC().Format("20060102T150405Z")
	if p.CreatedAt.IsZero() {
		stamp = time.Now().UTC().Format("20060102T150405Z")
	}

	line(&b, "BEGIN:VCALENDAR")
	line(&b, "VERSION:2.0")
	line(&b, "PRODID:-//fitplan//daily plan//EN")
	line(&b, "CALSCALE:GREGORIAN")
	line(&b, "X-WR-CALNAME:"+escapeText(p.Name))
	for _, s := range Sessions(p) {
		line(&b, "BEGIN:VEVENT")
		line(&b, fmt.Sprintf("UID:plan-%d-day-%d@fitplan", p.ID, s.DayIndex))
		line(&b, "DTSTAMP:"+stamp)
		line(&b, "DTSTART;VALUE=DATE:"+s.Date.Format(icsDate))
		line(&b, "DTEND;VALUE=DATE:"+s.Date.AddDays(1).Format(icsDate))
		line(&b, "SUMMARY:"+escapeText(summary(s)))
		if len(s.Exercises) > 0 {
			line(&b, "DESCRIPTION:"+escapeText(describe(s.Exercises)))
		}
		line(&b, "END:VEVENT")
	}
	line(&b, "END:VCALENDAR")

	_, err := io.WriteString(w, b.String())
	return err
}

func summary(s Session) string {
	if s.ProgramDay == 0 {
		return "Workout"
	}
	return fmt.Sprintf("Workout (program day %d)", s.ProgramDay)
}

func describe(exercises []domain.ProgramExercise) string {
	parts := make([]string, len(exercises))
	for i, e := range exercises {
		parts[i] = fmt.Sprintf("%d. %s %dx%d", e.OrderInDay, e.ExerciseName, e.Sets, e.Reps)
	}
	return strings.Join(parts, "\n")
}

// line writes one content line, folded at 75 octets.
func line(b *strings.Builder, s string) {
	for len(s) > 75 {
		cut := 75
		for cut > 0 && !isRuneStart(s[cut]) {
			cut--
		}
		b.WriteString(s[:cut])
		b.WriteString("\r\n ")
		s = s[cut:]
	}
	b.WriteString(s)
	b.WriteString("\r\n")
}

func isRuneStart(c byte) bool {
	return c&0xC0 != 0x80
}

var textEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
