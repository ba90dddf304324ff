package tracker

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// rawWeather mirrors WeatherSample with a loosely typed timestamp so that
// exports using epoch milliseconds and RFC 3339 strings both parse.
type rawWeather struct {
	ID         string          `json:"id"`
	Timestamp  json.RawMessage `json:"timestamp"`
	Temp       *float64        `json:"temp"`
	FeelsLike  float64         `json:"feelsLike"`
	Conditions string          `json:"conditions"`
	Humidity   int             `json:"humidity"`
	WindSpeed  float64         `json:"windSpeed"`
	Location   string          `json:"location"`
}

type rawProductivity struct {
	ID                string          `json:"id"`
	Timestamp         json.RawMessage `json:"timestamp"`
	FocusedTime       int             `json:"focusedTime"`
	DistractedTime    int             `json:"distractedTime"`
	ProductivityScore *int            `json:"productivityScore"`
	AppsUsed          []string        `json:"appsUsed"`
}

type rawPomodoro struct {
	ID        string          `json:"id"`
	Timestamp json.RawMessage `json:"timestamp"`
	Duration  int             `json:"duration"`
	Completed bool            `json:"completed"`
	Cycle     int             `json:"cycle"`
}

// ParseTimestamp accepts epoch milliseconds (number or numeric string) or an
// RFC 3339 string. It returns the zero time for anything else.
func ParseTimestamp(raw json.RawMessage) time.Time {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return time.Time{}
	}
	s = strings.Trim(s, `"`)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return time.UnixMilli(int64(f))
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return time.Time{}
}

// Batch holds records parsed from an import file.
type Batch struct {
	Weather      []WeatherSample
	Productivity []ProductivitySample
	Pomodoro     []PomodoroSession
	Skipped      int
}

// Len returns the number of parsed records.
func (b Batch) Len() int {
	return len(b.Weather) + len(b.Productivity) + len(b.Pomodoro)
}

// ParseFile opens path and parses it as JSONL records of the given stream.
func ParseFile(path string, stream Stream) (Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return Batch{}, err
	}
	defer func() { _ = f.Close() }()
	return Parse(f, stream)
}

// Parse reads JSONL records for one stream. Lines that are not valid JSON or
// lack a usable timestamp are counted as skipped. Records without an ID get
// a new one.
func Parse(r io.Reader, stream Stream) (Batch, error) {
	var batch Batch
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		if !parseLine(line, stream, &batch) {
			batch.Skipped++
		}
	}
	return batch, scanner.Err()
}

func parseLine(line []byte, stream Stream, batch *Batch) bool {
	switch stream {
	case StreamWeather:
		var rw rawWeather
		if err := json.Unmarshal(line, &rw); err != nil {
			return false
		}
		ts := ParseTimestamp(rw.Timestamp)
		if ts.IsZero() || rw.Temp == nil {
			return false
		}
		batch.Weather = append(batch.Weather, WeatherSample{
			ID:         idOrNew(rw.ID),
			Timestamp:  ts,
			Temp:       *rw.Temp,
			FeelsLike:  rw.FeelsLike,
			Conditions: rw.Conditions,
			Humidity:   rw.Humidity,
			WindSpeed:  rw.WindSpeed,
			Location:   rw.Location,
		})
	case StreamProductivity:
		var rp rawProductivity
		if err := json.Unmarshal(line, &rp); err != nil {
			return false
		}
		ts := ParseTimestamp(rp.Timestamp)
		if ts.IsZero() {
			return false
		}
		score := 0
		if rp.ProductivityScore != nil {
			score = *rp.ProductivityScore
		} else {
			score = Score(rp.FocusedTime, rp.DistractedTime)
		}
		batch.Productivity = append(batch.Productivity, ProductivitySample{
			ID:                idOrNew(rp.ID),
			Timestamp:         ts,
			FocusedTime:       rp.FocusedTime,
			DistractedTime:    rp.DistractedTime,
			ProductivityScore: clampScore(score),
			AppsUsed:          rp.AppsUsed,
		})
	case StreamPomodoro:
		var rs rawPomodoro
		if err := json.Unmarshal(line, &rs); err != nil {
			return false
		}
		ts := ParseTimestamp(rs.Timestamp)
		if ts.IsZero() {
			return false
		}
		batch.Pomodoro = append(batch.Pomodoro, PomodoroSession{
			ID:        idOrNew(rs.ID),
			Timestamp: ts,
			Duration:  rs.Duration,
			Completed: rs.Completed,
			Cycle:     rs.Cycle,
		})
	default:
		return false
	}
	return true
}

func idOrNew(id string) string {
	if id == "" {
		return NewID()
	}
	return id
}
