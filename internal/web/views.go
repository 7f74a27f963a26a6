package web

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/azizikri/edulearn/internal/client"
	"github.com/azizikri/edulearn/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	loadErrorMessage = "Error loading courses. Please try again later."
	bannerErrorText  = "Unable to load featured content. Please try again later."
)

var printer = message.NewPrinter(language.English)

type Link struct {
	Label string
	Href  string
}

type FooterColumn struct {
	Title string
	Links []Link
}

var navLinks = []Link{
	{Label: "Courses", Href: "/#courses"},
	{Label: "About", Href: "/#about"},
	{Label: "Pricing", Href: "/#pricing"},
	{Label: "Contact", Href: "/#contact"},
}

var footerColumns = []FooterColumn{
	{Title: "Courses", Links: []Link{
		{Label: "Machine Learning", Href: "#"},
		{Label: "Deep Learning", Href: "#"},
		{Label: "Natural Language Processing", Href: "#"},
		{Label: "Computer Vision", Href: "#"},
		{Label: "AI for Everyone", Href: "#"},
	}},
	{Title: "Company", Links: []Link{
		{Label: "About Us", Href: "#"},
		{Label: "Careers", Href: "#"},
		{Label: "Press", Href: "#"},
		{Label: "Blog", Href: "#"},
		{Label: "Partners", Href: "#"},
	}},
	{Title: "Support", Links: []Link{
		{Label: "Help Center", Href: "#"},
		{Label: "Contact Us", Href: "#"},
		{Label: "FAQ", Href: "#"},
		{Label: "Privacy Policy", Href: "#"},
		{Label: "Terms of Service", Href: "#"},
	}},
}

type Contact struct {
	Email    string
	Phone    string
	Location string
}

var footerContact = Contact{
	Email:    "contact@edulearn.ai",
	Phone:    "+1 (555) 123-4567",
	Location: "San Francisco, CA",
}

type Chrome struct {
	Brand   string
	Nav     []Link
	Columns []FooterColumn
	Contact Contact
	Year    int
}

type Slide struct {
	domain.Banner
	Index  int
	Active bool
}

// CarouselView is rendered in exactly one state: loading, error, or slides.
// Hidden is set when there is nothing to show.
type CarouselView struct {
	Loading bool
	Error   string
	Hidden  bool
	Slides  []Slide
	Prev    int
	Next    int
}

func newCarouselView(st client.State[[]domain.Banner], current int) CarouselView {
	switch st.Status {
	case client.StatusIdle, client.StatusPending:
		return CarouselView{Loading: true}
	case client.StatusError:
		return CarouselView{Error: bannerErrorText}
	}

	n := len(st.Data)
	if n == 0 {
		return CarouselView{Hidden: true}
	}
	current = wrap(current, n)

	slides := make([]Slide, n)
	for i, b := range st.Data {
		slides[i] = Slide{Banner: b, Index: i, Active: i == current}
	}
	return CarouselView{
		Slides: slides,
		Prev:   wrap(current-1, n),
		Next:   wrap(current+1, n),
	}
}

type CardView struct {
	domain.Course
	Initial  string
	Rating   string
	Students string
	Price    string
}

func newCardView(c domain.Course) CardView {
	initial := ""
	if r, _ := utf8.DecodeRuneInString(c.Title); r != utf8.RuneError {
		initial = strings.ToUpper(string(r))
	}
	return CardView{
		Course:   c,
		Initial:  initial,
		Rating:   strconv.FormatFloat(c.Rating, 'f', -1, 64),
		Students: printer.Sprintf("%d", c.Students),
		Price:    "$" + strconv.FormatFloat(c.Price, 'f', -1, 64),
	}
}

// GridView is rendered in exactly one state: loading, error, or cards.
type GridView struct {
	Loading bool
	Error   string
	Cards   []CardView
}

func newGridView(st client.State[[]domain.Course]) GridView {
	switch st.Status {
	case client.StatusIdle, client.StatusPending:
		return GridView{Loading: true}
	case client.StatusError:
		return GridView{Error: loadErrorMessage}
	}

	cards := make([]CardView, len(st.Data))
	for i, c := range st.Data {
		cards[i] = newCardView(c)
	}
	return GridView{Cards: cards}
}
