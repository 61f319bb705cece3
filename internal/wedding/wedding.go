// Package wedding defines the wedding details domain types shared by the
// store, the service, and the web surface.
package wedding

// Ceremony is one event within the wedding's ordered event list. All fields
// are display text; dates, times, and map links are opaque strings.
type Ceremony struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Address  string `json:"address"`
	MapLink  string `json:"mapLink"`
}

// Details is the singleton record holding all displayable wedding content.
// Ceremony order is meaningful: it is the display order.
type Details struct {
	GroomName      string     `json:"groomName"`
	BrideName      string     `json:"brideName"`
	InvitationText string     `json:"invitationText"`
	Ceremonies     []Ceremony `json:"ceremonies"`
}

// Clone returns a deep copy of the details, including the ceremony sequence.
func (d Details) Clone() Details {
	out := d
	out.Ceremonies = make([]Ceremony, len(d.Ceremonies))
	copy(out.Ceremonies, d.Ceremonies)
	return out
}

// Defaults returns the fixed record rendered when no details have been saved
// yet, so the site never shows an empty page.
func Defaults() Details {
	return Details{
		GroomName: "Alexander",
		BrideName: "Isabella",
		InvitationText: "With hearts full of joy and love, we cordially invite you to witness " +
			"and celebrate the sacred union of our souls. Join us as we embark on this " +
			"beautiful journey together, surrounded by the warmth and blessings of our " +
			"beloved family and friends.",
		Ceremonies: []Ceremony{
			{
				Name:     "Wedding Ceremony",
				Date:     "December 15, 2024",
				Time:     "4:00 PM",
				Location: "Royal Gardens Chapel",
				Address:  "123 Royal Avenue, Golden City, GC 12345",
				MapLink:  "https://maps.google.com/?q=123+Royal+Avenue+Golden+City",
			},
			{
				Name:     "Reception Dinner",
				Date:     "December 15, 2024",
				Time:     "7:00 PM",
				Location: "Grand Ballroom",
				Address:  "456 Palace Street, Golden City, GC 12345",
				MapLink:  "https://maps.google.com/?q=456+Palace+Street+Golden+City",
			},
		},
	}
}
