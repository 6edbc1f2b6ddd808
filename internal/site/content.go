package site

import "github.com/thebar-catering/thebar-site/internal/i18n"

// Content is everything that differs between page variants. The markup is
// shared; only this data changes per language or campaign.
type Content struct {
	Locale       i18n.Locale
	Brand        string
	Hero         Hero
	Packages     []Package
	Testimonials []Testimonial
	Services     []string
	EventTypes   []string
	Labels       Labels
}

type Hero struct {
	Title    string
	Subtitle string
	CTA      string
}

type Package struct {
	Name        string
	Description string
	Price       string
}

type Testimonial struct {
	Quote  string
	Author string
}

// Labels are the form captions.
type Labels struct {
	PopupTitle   string
	ContactTitle string
	Name         string
	Email        string
	Phone        string
	Date         string
	Service      string
	EventType    string
	Message      string
	Submit       string
}

var contentByLocale = map[i18n.Locale]Content{
	i18n.Czech: {
		Locale: i18n.Czech,
		Brand:  "THE BAR.",
		Hero: Hero{
			Title:    "Koktejlový bar na vaši akci",
			Subtitle: "Mobilní bar, barmani a drinky na míru pro svatby, firemní večírky a oslavy.",
			CTA:      "Nezávazná poptávka",
		},
		Packages: []Package{
			{Name: "Classic", Description: "Klasické koktejly, 1 barman, 4 hodiny", Price: "od 15 000 Kč"},
			{Name: "Signature", Description: "Autorská koktejlová karta, 2 barmani, 5 hodin", Price: "od 28 000 Kč"},
			{Name: "Premium Flair", Description: "Flair show, prémiové destiláty, 3 barmani", Price: "od 45 000 Kč"},
		},
		Testimonials: []Testimonial{
			{Quote: "Drinky byly hvězdou celé svatby.", Author: "Tereza a Martin"},
			{Quote: "Profesionální tým, hosté byli nadšení.", Author: "Firemní večírek, Praha"},
		},
		Services:   []string{"Classic", "Signature", "Premium Flair"},
		EventTypes: []string{"Svatba", "Firemní akce", "Soukromá oslava", "Jiné"},
		Labels: Labels{
			PopupTitle:   "Rezervujte si termín",
			ContactTitle: "Kontaktujte nás",
			Name:         "Jméno",
			Email:        "E-mail",
			Phone:        "Telefon",
			Date:         "Datum akce",
			Service:      "Balíček",
			EventType:    "Typ akce",
			Message:      "Zpráva",
			Submit:       "Odeslat",
		},
	},
	i18n.English: {
		Locale: i18n.English,
		Brand:  "THE BAR.",
		Hero: Hero{
			Title:    "A cocktail bar for your event",
			Subtitle: "Mobile bar, bartenders and bespoke drinks for weddings, corporate parties and celebrations.",
			CTA:      "Request a quote",
		},
		Packages: []Package{
			{Name: "Classic", Description: "Classic cocktails, 1 bartender, 4 hours", Price: "from CZK 15,000"},
			{Name: "Signature", Description: "Signature cocktail menu, 2 bartenders, 5 hours", Price: "from CZK 28,000"},
			{Name: "Premium Flair", Description: "Flair show, premium spirits, 3 bartenders", Price: "from CZK 45,000"},
		},
		Testimonials: []Testimonial{
			{Quote: "The drinks were the star of our wedding.", Author: "Tereza & Martin"},
			{Quote: "Professional team, our guests loved it.", Author: "Corporate party, Prague"},
		},
		Services:   []string{"Classic", "Signature", "Premium Flair"},
		EventTypes: []string{"Wedding", "Corporate event", "Private party", "Other"},
		Labels: Labels{
			PopupTitle:   "Book your date",
			ContactTitle: "Contact us",
			Name:         "Name",
			Email:        "Email",
			Phone:        "Phone",
			Date:         "Event date",
			Service:      "Package",
			EventType:    "Event type",
			Message:      "Message",
			Submit:       "Send",
		},
	},
}

// ContentFor returns the page content for a locale. Russian and Ukrainian
// visitors get the English copy with their own form messages.
func ContentFor(locale i18n.Locale) Content {
	if c, ok := contentByLocale[locale]; ok {
		return c
	}
	c := contentByLocale[i18n.English]
	if locale.Supported() {
		c.Locale = locale
	} else {
		c = contentByLocale[i18n.Fallback]
	}
	return c
}
