package vtt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

const (
	secondsRatio = 1000
	minutesRatio = secondsRatio * 60
	hoursRatio   = minutesRatio * 60
)

var timecodeRegex = regexp.MustCompile(
	`^(\d+):([0-5][0-9]):([0-5][0-9])(?:$|[.,](\d+))`,
)

// Time is a subtitle timestamp stored as a count of milliseconds. The
// ordinal is the only state; hours, minutes, seconds and milliseconds are
// derived from it.
type Time int64

// ShiftOptions describes an offset and an optional scaling ratio. A zero
// Ratio means no scaling.
type ShiftOptions struct {
	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int
	Ratio        float64
}

func NewTime(hours, minutes, seconds, milliseconds int) Time {
	return Time(int64(hours)*hoursRatio +
		int64(minutes)*minutesRatio +
		int64(seconds)*secondsRatio +
		int64(milliseconds))
}

func FromOrdinal(ms int64) Time {
	return Time(ms)
}

func FromDuration(d time.Duration) Time {
	return Time(d.Milliseconds())
}

// FromClock reads the time of day of t.
func FromClock(t time.Time) Time {
	return NewTime(t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))
}

// ParseTime reads H+:MM:SS[.,mmm]. The fractional digits are taken as a
// millisecond count.
func ParseTime(s string) (Time, error) {
	m := timecodeRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	parts := make([]int, 4)
	for i, group := range m[1:] {
		if group == "" {
			continue
		}
		v, err := strconv.Atoi(group)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeString, s, err)
		}
		parts[i] = v
	}
	return NewTime(parts[0], parts[1], parts[2], parts[3]), nil
}

// Coerce converts the accepted timestamp representations into a Time:
// Time, *Time, strings, integer ordinals, time.Duration, time-of-day
// time.Time values, ordered component slices and component maps.
func Coerce(v any) (Time, error) {
	switch x := v.(type) {
	case Time:
		return x, nil
	case *Time:
		if x == nil {
			return 0, ErrUncoercible
		}
		return *x, nil
	case string:
		return ParseTime(x)
	case int:
		return Time(x), nil
	case int32:
		return Time(x), nil
	case int64:
		return Time(x), nil
	case uint:
		return Time(x), nil
	case uint32:
		return Time(x), nil
	case time.Duration:
		return FromDuration(x), nil
	case time.Time:
		return FromClock(x), nil
	case [4]int:
		return NewTime(x[0], x[1], x[2], x[3]), nil
	case []int:
		return fromComponents(x)
	case map[string]int:
		for key := range x {
			switch key {
			case "hours", "minutes", "seconds", "milliseconds":
			default:
				return 0, fmt.Errorf("%w: unknown component %q", ErrUncoercible, key)
			}
		}
		return NewTime(x["hours"], x["minutes"], x["seconds"], x["milliseconds"]), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrUncoercible, v)
	}
}

func fromComponents(c []int) (Time, error) {
	if len(c) > 4 {
		return 0, fmt.Errorf("%w: %d components", ErrUncoercible, len(c))
	}
	var parts [4]int
	copy(parts[:], c)
	return NewTime(parts[0], parts[1], parts[2], parts[3]), nil
}

// MustParseTime is like ParseTime but panics on error.
func MustParseTime(s string) Time {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Time) Ordinal() int64 {
	return int64(t)
}

func (t Time) Hours() int {
	return int(floorDiv(int64(t), hoursRatio))
}

func (t Time) Minutes() int {
	return int(floorDiv(floorMod(int64(t), hoursRatio), minutesRatio))
}

func (t Time) Seconds() int {
	return int(floorDiv(floorMod(int64(t), minutesRatio), secondsRatio))
}

func (t Time) Milliseconds() int {
	return int(floorMod(int64(t), secondsRatio))
}

func (t *Time) SetHours(v int) {
	*t += Time(int64(v-t.Hours()) * hoursRatio)
}

func (t *Time) SetMinutes(v int) {
	*t += Time(int64(v-t.Minutes()) * minutesRatio)
}

func (t *Time) SetSeconds(v int) {
	*t += Time(int64(v-t.Seconds()) * secondsRatio)
}

func (t *Time) SetMilliseconds(v int) {
	*t += Time(v - t.Milliseconds())
}

func (t Time) Add(o Time) Time {
	return t + o
}

func (t Time) Sub(o Time) Time {
	return t - o
}

// Scale multiplies the ordinal by ratio, rounding half to even.
func (t Time) Scale(ratio float64) Time {
	return Time(math.RoundToEven(float64(t) * ratio))
}

func (t Time) Compare(o Time) int {
	switch {
	case t < o:
		return -1
	case t > o:
		return 1
	default:
		return 0
	}
}

func (t Time) Before(o Time) bool {
	return t < o
}

func (t Time) After(o Time) bool {
	return t > o
}

// Shift scales by opts.Ratio first and then adds the offset.
func (t *Time) Shift(opts ShiftOptions) {
	if opts.Ratio != 0 {
		*t = t.Scale(opts.Ratio)
	}
	*t += NewTime(opts.Hours, opts.Minutes, opts.Seconds, opts.Milliseconds)
}

func (t Time) Duration() time.Duration {
	return time.Duration(t) * time.Millisecond
}

// ToClock returns the timestamp as a time of day on the zero date.
func (t Time) ToClock() time.Time {
	if t < 0 {
		t = 0
	}
	return time.Date(0, time.January, 1,
		t.Hours(), t.Minutes(), t.Seconds(),
		t.Milliseconds()*int(time.Millisecond), time.UTC)
}

// String formats HH:MM:SS.mmm. Negative times render as zero.
func (t Time) String() string {
	if t < 0 {
		t = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d",
		t.Hours(), t.Minutes(), t.Seconds(), t.Milliseconds())
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
