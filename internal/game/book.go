package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-olc/internal/storage"
)

const (
	DefaultBookTitle           = "Untitled"
	DefaultBookByline          = "Anonymous"
	DefaultBookItemName        = "a book"
	DefaultBookItemDescription = "It appears to be a book."

	// NoAuthor is the author id of books written by nobody in particular.
	NoAuthor = 0
)

// Book is a player-written text that can be copied into book objects and
// shelved in libraries.
type Book struct {
	vnum storage.Vnum

	// Author is the player id of the writer. Books persist per author.
	Author          int      `json:"author"`
	Flags           Flags    `json:"flags"`
	Title           string   `json:"title"`
	Byline          string   `json:"byline"`
	ItemName        string   `json:"item_name"`
	ItemDescription string   `json:"item_description"`
	Paragraphs      []string `json:"paragraphs"`
	// Libraries are the room vnums that shelve this book.
	Libraries Vnums `json:"libraries"`
}

func NewBook(vnum storage.Vnum) *Book {
	return &Book{
		vnum:            vnum,
		Author:          NoAuthor,
		Title:           DefaultBookTitle,
		Byline:          DefaultBookByline,
		ItemName:        DefaultBookItemName,
		ItemDescription: DefaultBookItemDescription,
	}
}

func (b *Book) Vnum() storage.Vnum     { return b.vnum }
func (b *Book) SetVnum(v storage.Vnum) { b.vnum = v }
func (b *Book) Kind() Kind             { return KindBook }
func (b *Book) Label() string          { return b.Title }

func (b *Book) Clone() *Book {
	c := *b
	c.Paragraphs = slices.Clone(b.Paragraphs)
	c.Libraries = b.Libraries.Copy()
	return &c
}

func (b *Book) Sanitize() {
	b.Title = defaultIfBlank(b.Title, DefaultBookTitle)
	b.Byline = defaultIfBlank(b.Byline, DefaultBookByline)
	b.ItemName = defaultIfBlank(b.ItemName, DefaultBookItemName)
	b.ItemDescription = defaultIfBlank(b.ItemDescription, DefaultBookItemDescription)
}

func (b *Book) Validate() error {
	el := errors.NewErrorList()

	if b.Author < 0 {
		el.Add(fmt.Errorf("author must not be negative"))
	}
	if b.Title == "" {
		el.Add(fmt.Errorf("title is required"))
	}

	return el.Err()
}

// bookBlock persists books grouped by author rather than by vnum.
func bookBlock(b *Book) int {
	return b.Author
}

// optional collapses a blank optional string to unset.
func optional(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func defaultIfBlank(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
