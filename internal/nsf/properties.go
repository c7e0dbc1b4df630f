package nsf

import (
	"fmt"
	"strconv"
)

// Property is a named display value of a header.
type Property struct {
	Name  string
	Value string
}

// Properties returns the display values of all header fields in file order,
// followed by derived values.
func (h *Header) Properties() []Property {
	props := []Property{
		{"magic_number", hexBytes(h.Magic[:])},
		{"version", strconv.Itoa(int(h.Version))},
		{"total_songs", strconv.Itoa(int(h.TotalSongs))},
		{"starting_song", strconv.Itoa(int(h.StartingSong))},
		{"load_addr", hexWord(h.LoadAddress)},
		{"init_addr", hexWord(h.InitAddress)},
		{"play_addr", hexWord(h.PlayAddress)},
		{"title", h.Title},
		{"artist", h.Artist},
		{"copyright", h.Copyright},
		{"ntsc_speed", speedString(h.NTSCSpeed)},
		{"bankswitch_init", hexBytes(h.BankswitchInit[:])},
		{"pal_speed", speedString(h.PALSpeed)},
		{"tv_std", h.TVStandard().String()},
		{"ntsc_and_pal", strconv.FormatBool(h.DualMode)},
	}

	for _, chip := range chipBits {
		props = append(props, Property{chip.key, strconv.FormatBool(*chip.flag(&h.Chips))})
	}

	return append(props,
		Property{"valid", strconv.FormatBool(h.Valid)},
		Property{"bankswitching", strconv.FormatBool(h.UsesBankswitching())},
	)
}

func hexWord(w uint16) string {
	return fmt.Sprintf("$%04X", w)
}

func hexBytes(b []byte) string {
	return fmt.Sprintf("% X", b)
}

func speedString(speed uint16) string {
	if speed == 0 {
		return "0"
	}
	return fmt.Sprintf("%d (%.2f Hz)", speed, speedToRate(speed))
}
