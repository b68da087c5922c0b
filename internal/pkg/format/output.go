package format

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tm "github.com/buger/goterm"
	"github.com/fatih/color"
	"github.com/gioco-play/easy-i18n/i18n"
)

// Row is one line of the run summary table
type Row struct {
	Item    string
	Message string
	Suggest string
	OK      bool
}

// Table prints the rows as one aligned table, each row tagged [DONE] or [ERROR]
func Table(rows []Row) {
	var table = tm.NewTable(0, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintln(table, formatRow(row))
	}
	tm.Println(table)
	tm.Flush()
}

func formatRow(row Row) string {
	tip := color.GreenString(i18n.Sprintf("[DONE]"))
	if !row.OK {
		tip = color.RedString(i18n.Sprintf("[ERROR]"))
	}
	msg := padding(row.Message, 60)
	suggest := padding(row.Suggest, 20)
	return i18n.Sprintf("\t%s\t%s\t%s\t%s", row.Item, msg, suggest, tip)
}

// padding adds spaces to ensure consistent column width
func padding(item string, length int) string {
	itemLen := utf8.RuneCountInString(item)
	if itemLen < length {
		item += strings.Repeat(" ", length-itemLen)
	}
	return item
}
