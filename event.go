// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

// EventData is the authored definition of a user event: a name and default
// payload values.
type EventData struct {
	Name        string
	IntValue    int
	FloatValue  float32
	StringValue string
}

// Event is a fired instance of an EventData with its keyed time and any
// payload overrides from the event timeline frame.
type Event struct {
	Data *EventData
	Time float32

	IntValue    int
	FloatValue  float32
	StringValue string
}
