package dashboard

import (
	"fmt"
	"net/http"

	"github.com/huenthong/smartrouting/internal/demo"
	"github.com/huenthong/smartrouting/internal/format"
	"github.com/huenthong/smartrouting/internal/routing"
)

type agentsData struct {
	page
	Teams []teamView
}

type teamView struct {
	Icon   string
	Name   string
	Agents []agentRow
}

type agentRow struct {
	Name        string
	Badge       format.Badge
	LoadText    string
	BarWidth    int
	Chats       string
	Performance string
	ChipText    string
}

// handleAgents renders the per-team roster with live load bars, or the
// demo roster when the status endpoint fails.
func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c := s.client()

	data := agentsData{
		page: s.newPage(ctx, c, "agents", "👥 Agent Status & Load Balancing"),
	}

	roster, err := c.FetchAgentStatus(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("agent status unavailable, using demo roster")
		roster = demo.AgentRoster()
		data.Notice = demo.Notice
	}

	data.Teams = []teamView{
		{Icon: "💼", Name: "Sales Team", Agents: agentRows(roster.Sales)},
		{Icon: "🛠️", Name: "Support Team", Agents: agentRows(roster.Support)},
	}

	s.render(w, "agents.html", data)
}

func agentRows(agents []routing.AgentStatus) []agentRow {
	rows := make([]agentRow, 0, len(agents))
	for _, a := range agents {
		pct := a.LoadPercent()
		badge := format.LoadBadge(routing.ClassifyLoad(pct))

		// The chip mirrors the badge except that an available agent
		// reads "Ready".
		chip := badge.Label
		if chip == "Available" {
			chip = "Ready"
		}

		// Load can exceed 100% when an agent is over capacity; the bar
		// caps out while the text keeps the real number.
		width := int(pct)
		if width > 100 {
			width = 100
		}

		rows = append(rows, agentRow{
			Name:        a.Name,
			Badge:       badge,
			LoadText:    fmt.Sprintf("%.0f%%", pct),
			BarWidth:    width,
			Chats:       fmt.Sprintf("%d/%d", a.ActiveChats, a.MaxChats),
			Performance: trimFloat(a.Performance) + "%",
			ChipText:    chip,
		})
	}
	return rows
}
