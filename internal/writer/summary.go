package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/nsfscope/internal/tune"
)

var summaryColumns = []string{
	"name", "title", "artist", "copyright",
	"version", "total_songs", "starting_song",
	"load_addr", "init_addr", "play_addr",
	"ntsc_speed", "pal_speed", "tv_std", "ntsc_and_pal",
	"chips", "bankswitching",
	"code_size", "last_code_addr", "clipped_bytes",
	"instructions", "unknown_opcodes", "valid",
}

// WriteSummary writes one CSV row per tune record.
func WriteSummary(w io.Writer, records []*tune.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryColumns); err != nil {
		return fmt.Errorf("writing summary columns: %w", err)
	}

	for _, rec := range records {
		if err := cw.Write(summaryRow(rec)); err != nil {
			return fmt.Errorf("writing summary of '%s': %w", rec.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing summary: %w", err)
	}
	return nil
}

func summaryRow(rec *tune.Record) []string {
	h := rec.Header

	unknown := 0
	for _, ins := range rec.Instructions {
		if !ins.Known() {
			unknown++
		}
	}

	return []string{
		rec.Name,
		h.Title,
		h.Artist,
		h.Copyright,
		strconv.Itoa(int(h.Version)),
		strconv.Itoa(int(h.TotalSongs)),
		strconv.Itoa(int(h.StartingSong)),
		fmt.Sprintf("$%04X", h.LoadAddress),
		fmt.Sprintf("$%04X", h.InitAddress),
		fmt.Sprintf("$%04X", h.PlayAddress),
		strconv.Itoa(int(h.NTSCSpeed)),
		strconv.Itoa(int(h.PALSpeed)),
		h.TVStandard().String(),
		strconv.FormatBool(h.DualMode),
		strings.Join(h.Chips.Names(), "|"),
		strconv.FormatBool(h.UsesBankswitching()),
		strconv.Itoa(rec.CodeSize),
		fmt.Sprintf("$%04X", rec.LastCodeAddress),
		strconv.Itoa(rec.ClippedBytes),
		strconv.Itoa(len(rec.Instructions)),
		strconv.Itoa(unknown),
		strconv.FormatBool(h.Valid),
	}
}
