package sandbox

import (
	"fmt"

	"github.com/tomz197/collide/internal/config"
	"github.com/tomz197/collide/internal/object"
)

const helpLine = "arrows/wasd move  space shape  x sword  r reset  q quit"

// hudLines returns the overlay text, top to bottom.
func (s *session) hudLines() []string {
	p := s.probe
	center, _ := p.Shape.Bounds()
	lines := []string{
		helpLine,
		fmt.Sprintf("probe %s at %s", p.Shape.Kind, center),
	}

	if len(s.overlaps) > 0 {
		lines = append(lines, fmt.Sprintf("scene overlaps: %d", len(s.overlaps)))
	}

	for i, c := range p.Contacts {
		if i == config.ContactListLimit {
			lines = append(lines, fmt.Sprintf("  +%d more", len(p.Contacts)-i))
			break
		}
		lines = append(lines, fmt.Sprintf("  %-8s dir %s depth %.2f", c.A.Name, c.Result.Dir, c.Result.Depth))
	}

	switch {
	case !p.SwordOn:
	case p.Sword == nil:
		lines = append(lines, "sword: no target")
	default:
		lines = append(lines, fmt.Sprintf("sword %s: dir %s depth %.2f",
			p.Sword.Target.Name, p.Sword.Result.Dir, p.Sword.Result.Depth))
	}
	return lines
}

func (s *session) drawHUD() {
	for i, line := range s.hudLines() {
		if i >= s.canvas.Rows() {
			return
		}
		object.Text{Col: 1, Row: i + 1, Value: line}.Draw(s.text)
	}
}
