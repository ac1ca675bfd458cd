package booking

import (
	"errors"
	"strconv"
	"strings"
	"sync"
)

const (
	DefaultAge = 25
	AdultAge   = 18
	MaxAge     = 120
)

// MinimumGuestsMessage is shown when the last age row would be removed.
const MinimumGuestsMessage = "You must have at least one guest age"

var (
	ErrMinimumGuests   = errors.New("at least one guest age is required")
	ErrIndexOutOfRange = errors.New("guest index out of range")
)

// Counters is the adult/minor split of an age list. Age 0 is a placeholder and counts as neither.
type Counters struct {
	Adults    int   `json:"adults"`
	Minors    int   `json:"minors"`
	MinorAges []int `json:"minorAges"`
}

func IsAdult(age int) bool {
	return age >= AdultAge
}

func IsMinor(age int) bool {
	return age > 0 && age < AdultAge
}

func CountGuests(ages []int) Counters {
	counters := Counters{
		MinorAges: []int{},
	}

	for _, age := range ages {
		switch {
		case IsAdult(age):
			counters.Adults++
		case IsMinor(age):
			counters.Minors++
			counters.MinorAges = append(counters.MinorAges, age)
		}
	}

	return counters
}

// Snapshot is handed to observers after every mutation of an AgeList.
type Snapshot struct {
	Ages      []int
	Occupants int
	Counters  Counters
}

type Observer func(Snapshot)

// AgeList backs the dynamic guest age rows of the booking form.
// It always holds at least one entry.
type AgeList struct {
	ages      []int
	occupants int
	observers []Observer
	sync.Mutex
}

func NewAgeList() *AgeList {
	return &AgeList{
		ages:      []int{DefaultAge},
		occupants: 1,
	}
}

// Subscribe registers an observer and immediately hands it the current state.
func (l *AgeList) Subscribe(observer Observer) {
	l.Lock()
	l.observers = append(l.observers, observer)
	snapshot := l.snapshot()
	l.Unlock()

	observer(snapshot)
}

func (l *AgeList) AddEntry() {
	l.Lock()
	l.addEntry()
	l.occupants = len(l.ages)
	l.Unlock()

	l.notify()
}

func (l *AgeList) RemoveEntry(index int) error {
	l.Lock()

	if len(l.ages) <= 1 {
		l.Unlock()
		return ErrMinimumGuests
	}

	if index < 0 || index >= len(l.ages) {
		l.Unlock()
		return ErrIndexOutOfRange
	}

	l.ages = append(l.ages[:index], l.ages[index+1:]...)
	l.occupants = len(l.ages)
	l.Unlock()

	l.notify()

	return nil
}

// SetOccupantCount grows or trims the list to n entries. The first entry is never removed.
func (l *AgeList) SetOccupantCount(n int) {
	l.Lock()
	l.occupants = n

	switch {
	case n > len(l.ages):
		for len(l.ages) < n {
			l.addEntry()
		}
	case n < len(l.ages):
		keep := n
		if keep < 1 {
			keep = 1
		}
		l.ages = l.ages[:keep]
	}
	l.Unlock()

	l.notify()
}

// ReplaceEntries swaps every row for the parsed values. The declared head count is kept,
// so it may disagree with the row count afterwards. An empty slice is ignored.
func (l *AgeList) ReplaceEntries(values []string) {
	if len(values) == 0 {
		return
	}

	ages := make([]int, 0, len(values))
	for _, value := range values {
		ages = append(ages, ParseAge(value))
	}

	l.Lock()
	l.ages = ages
	l.Unlock()

	l.notify()
}

// UpdateEntry stores the parsed age at index. Input that is not a number becomes 0.
func (l *AgeList) UpdateEntry(index int, value string) error {
	age := ParseAge(value)

	l.Lock()
	if index < 0 || index >= len(l.ages) {
		l.Unlock()
		return ErrIndexOutOfRange
	}

	l.ages[index] = age
	l.Unlock()

	l.notify()

	return nil
}

func (l *AgeList) Counters() Counters {
	l.Lock()
	defer l.Unlock()

	return CountGuests(l.ages)
}

func (l *AgeList) Ages() []int {
	l.Lock()
	defer l.Unlock()

	return append([]int{}, l.ages...)
}

func (l *AgeList) Len() int {
	l.Lock()
	defer l.Unlock()

	return len(l.ages)
}

// Occupants is the declared head count. It follows the row count after AddEntry and
// RemoveEntry and keeps whatever SetOccupantCount was given otherwise.
func (l *AgeList) Occupants() int {
	l.Lock()
	defer l.Unlock()

	return l.occupants
}

func (l *AgeList) addEntry() {
	l.ages = append(l.ages, DefaultAge)
}

func (l *AgeList) snapshot() Snapshot {
	return Snapshot{
		Ages:      append([]int{}, l.ages...),
		Occupants: l.occupants,
		Counters:  CountGuests(l.ages),
	}
}

func (l *AgeList) notify() {
	l.Lock()
	snapshot := l.snapshot()
	observers := append([]Observer{}, l.observers...)
	l.Unlock()

	for _, observer := range observers {
		observer(snapshot)
	}
}

// ParseAge reads the leading integer of value the way a number input does; anything else is 0.
func ParseAge(value string) int {
	value = strings.TrimSpace(value)

	end := 0
	for end < len(value) {
		c := value[end]
		if (c == '-' || c == '+') && end == 0 {
			end++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		end++
	}

	age, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0
	}

	return age
}
