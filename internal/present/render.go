package present

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pbaille/investin/internal/catalog"
	"github.com/pbaille/investin/internal/domain"
)

const descriptionPreview = 120

// FormatMillions renders a base-unit amount as "$1.5M"
func FormatMillions(amount float64, decimals int) string {
	return fmt.Sprintf("$%.*fM", decimals, amount/1_000_000)
}

// FormatPercent renders a plain number as a percentage, e.g. "12.5%"
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func descriptionOr(s string) string {
	if strings.TrimSpace(s) == "" {
		return "No description available"
	}
	return s
}

func preview(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func metric(theme Theme, label, value string) string {
	return theme.Label.Render(label+": ") + theme.Value.Render(value)
}

// Card renders the summary card for one startup
func Card(theme Theme, s domain.StartupWithSector) string {
	lines := []string{theme.Title.Render(s.Name)}
	if s.Sector != nil {
		lines = append(lines, theme.Badge.Render(s.Sector.Name))
	}
	lines = append(lines,
		theme.Text.Render(preview(descriptionOr(s.Description), descriptionPreview)),
		metric(theme, "Profit Margin", FormatPercent(s.ProfitMargin)),
		metric(theme, "Seeking", FormatMillions(s.FundingNeeded, 1)),
		metric(theme, "Equity", FormatPercent(s.EquityOffered)),
		metric(theme, "Founded", strconv.Itoa(s.FoundedYear)),
		theme.Muted.Render("id "+shortID(s.ID)),
	)
	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// CardList renders the visible startups, or the empty-state message
func CardList(theme Theme, startups []domain.StartupWithSector) string {
	if len(startups) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			theme.Text.Render("No opportunities found"),
			theme.Muted.Render("Try adjusting your search"),
		)
	}
	cards := make([]string, 0, len(startups))
	for _, s := range startups {
		cards = append(cards, Card(theme, s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// SectorBar renders "All" followed by each sector, highlighting the selection
func SectorBar(theme Theme, sectors []domain.Sector, selected domain.SectorFilter) string {
	chip := func(label string, on bool) string {
		if on {
			return theme.Selected.Render(label)
		}
		return theme.Chip.Render(label)
	}

	chips := []string{chip("All", selected == domain.AllSectors)}
	for _, sec := range sectors {
		chips = append(chips, chip(sec.Name, string(selected) == sec.ID))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

// DetailView renders the selected startup with its investor roster
func DetailView(theme Theme, snap catalog.DetailSnapshot) string {
	if snap.State == catalog.DetailClosed || snap.Startup == nil {
		return ""
	}
	s := snap.Startup

	lines := []string{theme.Title.Render(s.Name)}
	if s.Sector != nil {
		lines = append(lines, theme.Badge.Render(s.Sector.Name))
	}
	lines = append(lines, theme.Text.Render(descriptionOr(s.Description)))
	if s.Website != "" {
		lines = append(lines, theme.Link.Render("Visit Website: "+s.Website))
	}
	if s.LogoURL != "" {
		lines = append(lines, theme.Muted.Render("Logo: "+s.LogoURL))
	}
	lines = append(lines,
		lipgloss.JoinHorizontal(lipgloss.Top,
			metric(theme, "Profit Margin", FormatPercent(s.ProfitMargin)), "   ",
			metric(theme, "Funding Needed", FormatMillions(s.FundingNeeded, 1)), "   ",
			metric(theme, "Equity Offered", FormatPercent(s.EquityOffered)), "   ",
			metric(theme, "Founded", strconv.Itoa(s.FoundedYear)),
		),
		theme.Section.Render("Interested Investors"),
	)

	switch {
	case snap.State == catalog.DetailLoading:
		lines = append(lines, theme.Muted.Render("Loading investors..."))
	case len(snap.Investors) == 0:
		lines = append(lines, theme.Muted.Render("No investors listed yet"))
	default:
		for _, inv := range snap.Investors {
			lines = append(lines, investorLine(theme, inv))
		}
	}

	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// investorLine omits empty contact fields and uncommitted amounts
func investorLine(theme Theme, inv domain.Investor) string {
	parts := []string{theme.Value.Render(inv.Name)}
	if inv.Phone != "" {
		parts = append(parts, theme.Text.Render(inv.Phone))
	}
	if inv.Email != "" {
		parts = append(parts, theme.Text.Render(inv.Email))
	}
	if inv.InvestmentAmount != nil && *inv.InvestmentAmount != 0 {
		parts = append(parts, theme.Value.Render(FormatMillions(*inv.InvestmentAmount, 2)))
	}
	return "• " + strings.Join(parts, "  ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
