package handlers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/charter/internal/frontend/telnet"
	"github.com/cory-johannsen/charter/internal/game/unit"
	"github.com/cory-johannsen/charter/internal/game/world"
)

// renderStatus formats the colony overview.
func renderStatus(w *world.World) string {
	var sb strings.Builder
	sb.WriteString(telnet.Colorize(telnet.Bold+telnet.BrightCyan, "=== The Charter ===") + "\r\n")
	sb.WriteString(fmt.Sprintf("  Turn:           %d\r\n", w.Turn))
	sb.WriteString(fmt.Sprintf("  Treasury:       %s\r\n",
		telnet.Colorf(telnet.BrightYellow, "%d", w.Ledger.Get())))
	sb.WriteString(fmt.Sprintf("  Public opinion: %d\r\n", w.Opinion.Get()))
	if w.Traders.Abolished() {
		sb.WriteString("  Slave trade:    " + telnet.Colorize(telnet.BrightGreen, "abolished") + "\r\n")
	} else {
		sb.WriteString(fmt.Sprintf("  Slave lobby:    strength %d\r\n", w.Traders.Strength()))
	}
	sb.WriteString(fmt.Sprintf("  Trade goods:    %d\r\n", w.ConsumerGoods))
	sb.WriteString(fmt.Sprintf("  Labor pool:     %d\r\n", w.LaborPool))
	if len(w.DiscoveredRegions) > 0 {
		sb.WriteString(fmt.Sprintf("  Explored:       %s\r\n", strings.Join(w.DiscoveredRegions, ", ")))
	}
	return sb.String()
}

// renderUnits formats the living roster.
func renderUnits(w *world.World) string {
	living := w.Units.Living()
	if len(living) == 0 {
		return telnet.Colorize(telnet.Yellow, "You have no one left in your service.") + "\r\n"
	}

	var sb strings.Builder
	sb.WriteString(telnet.Colorize(telnet.Bold+telnet.BrightCyan, "=== Units ===") + "\r\n")
	for _, u := range living {
		tags := make([]string, 0, 3)
		if u.Veteran {
			tags = append(tags, telnet.Colorize(telnet.BrightGreen, "veteran"))
		}
		if u.Sentry {
			tags = append(tags, "sentry")
		}
		if caps := capabilityList(u); caps != "" {
			tags = append(tags, caps)
		}
		suffix := ""
		if len(tags) > 0 {
			suffix = " [" + strings.Join(tags, ", ") + "]"
		}
		sb.WriteString(fmt.Sprintf("  %s (%s) at %s, movement %d/%d%s\r\n",
			telnet.Colorize(telnet.Cyan, u.Name), u.Kind, locationName(u.Location),
			u.MovementPoints, u.MaxMovement, suffix))
	}
	return sb.String()
}

// renderVillages formats the known villages.
func renderVillages(w *world.World) string {
	villages := w.Villages()
	if len(villages) == 0 {
		return telnet.Colorize(telnet.Yellow, "No villages are known.") + "\r\n"
	}

	var sb strings.Builder
	sb.WriteString(telnet.Colorize(telnet.Bold+telnet.BrightCyan, "=== Villages ===") + "\r\n")
	for _, v := range villages {
		sb.WriteString(fmt.Sprintf("  %s: population %d, hostility %d",
			telnet.Colorize(telnet.Cyan, v.Name), v.Population, v.Aggressiveness))
		if v.TradeUnlocked > 0 {
			sb.WriteString(fmt.Sprintf(", %d trades open", v.TradeUnlocked))
		}
		sb.WriteString("\r\n")
		if rumors := v.RevealedRumors(); len(rumors) > 0 {
			sb.WriteString(fmt.Sprintf("      rumors: %s\r\n", strings.Join(rumors, ", ")))
		}
	}
	return sb.String()
}

func capabilityList(u *unit.Unit) string {
	if len(u.Capabilities) == 0 {
		return ""
	}
	caps := make([]string, 0, len(u.Capabilities))
	for c := range u.Capabilities {
		caps = append(caps, c)
	}
	sort.Strings(caps)
	return strings.Join(caps, "/")
}

func locationName(loc string) string {
	if loc == unit.LocationEurope {
		return "Europe"
	}
	return loc
}
