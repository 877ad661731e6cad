// Package keyboard provides inline keyboard construction helpers.
package keyboard

import tele "gopkg.in/telebot.v4"

// Btn describes a convenience wrapper for inline button properties.
type Btn struct {
	Text   string
	Unique string
	Data   string
	URL    string
}

// Inline builds an inline keyboard from rows of Btn.
func Inline(rows ...[]Btn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			if btn.URL != "" {
				r[j] = *markup.URL(btn.Text, btn.URL).Inline()
				continue
			}
			r[j] = *markup.Data(btn.Text, btn.Unique, btn.Data).Inline()
		}
		inline[i] = r
	}
	markup.InlineKeyboard = inline
	return markup
}

// Empty returns a markup with an explicitly empty inline keyboard.
// Messages keep a consistent shape so later edits can always carry markup.
func Empty() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{}}
}

// Chunk splits a flat list of buttons into rows with up to n buttons per row.
func Chunk(buttons []Btn, n int) [][]Btn {
	if n <= 1 {
		out := make([][]Btn, 0, len(buttons))
		for _, b := range buttons {
			out = append(out, []Btn{b})
		}
		return out
	}
	var rows [][]Btn
	for i := 0; i < len(buttons); i += n {
		end := i + n
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[i:end])
	}
	return rows
}
