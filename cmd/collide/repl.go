package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tomz197/collide/internal/binding"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errUnknownName    = errors.New("unknown name")
	errUsage          = errors.New("usage")
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Create vectors and polygons and call the collision routines line by line.",
		Long: `Reads one call per line from stdin, for example:

  vec.new 0 0
  vec.new 3 0
  circleCircle v1 2 v2 2

New values are named v1, v2, ... and p1, p2, ... in creation order.
Type "help" for the full list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := newREPL(binding.NewArena(), a.log)
			return r.run(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// repl names arena handles so a person can type them.
type repl struct {
	arena *binding.Arena
	log   *zap.Logger

	vecs         map[string]binding.VectorID
	polys        map[string]binding.PolygonID
	nextV, nextP int
}

type replCommand struct {
	usage    string
	min, max int // max < 0 means unbounded
	run      func(r *repl, args []string) (string, error)
}

var replCommands = map[string]replCommand{
	"vec.new":       {"X Y", 2, 2, (*repl).vecNew},
	"vec.copy":      {"V", 1, 1, (*repl).vecCopy},
	"vec.get":       {"V [x|y]", 1, 2, (*repl).vecGet},
	"vec.set":       {"V x|y VALUE", 3, 3, (*repl).vecSet},
	"vec.addScaled": {"V W SCALE [W SCALE ...]", 3, -1, (*repl).vecAddScaled},
	"vec.normalize": {"V", 1, 1, (*repl).vecNormalize},
	"vec.dot":       {"V W", 2, 2, (*repl).vecDot},
	"vec.free":      {"V", 1, 1, (*repl).vecFree},

	"poly.new":       {"COUNT", 1, 1, (*repl).polyNew},
	"poly.coords":    {"X1 Y1 [X2 Y2 ...]", 2, -1, (*repl).polyCoords},
	"poly.len":       {"P", 1, 1, (*repl).polyLen},
	"poly.vertex":    {"P N", 2, 2, (*repl).polyVertex},
	"poly.set":       {"P X1 Y1 [X2 Y2 ...]", 3, -1, (*repl).polySet},
	"poly.translate": {"P V SCALE", 3, 3, (*repl).polyTranslate},
	"poly.bounds":    {"P", 1, 1, (*repl).polyBounds},
	"poly.free":      {"P", 1, 1, (*repl).polyFree},

	"circleCircle_check": {"V R V R", 4, 4, (*repl).circleCircleCheck},
	"circleCircle":       {"V R V R", 4, 4, (*repl).circleCircle},
	"polyPoly_check":     {"P P", 2, 2, (*repl).polyPolyCheck},
	"polyPoly":           {"P P", 2, 2, (*repl).polyPoly},
	"circlePoly_check":   {"V R P", 3, 3, (*repl).circlePolyCheck},
	"circlePoly":         {"V R P", 3, 3, (*repl).circlePoly},
	"swordRes":           {"V R P", 3, 3, (*repl).sword},

	"live": {"", 0, 0, (*repl).live},
}

func newREPL(arena *binding.Arena, log *zap.Logger) *repl {
	return &repl{
		arena: arena,
		log:   log,
		vecs:  make(map[string]binding.VectorID),
		polys: make(map[string]binding.PolygonID),
	}
}

// run executes every line of in. Failed calls print an error line and do
// not stop the session.
func (r *repl) run(in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		res, err := r.exec(fields[0], fields[1:])
		if err != nil {
			r.log.Debug("repl call failed", zap.String("line", line), zap.Error(err))
			res = "error: " + err.Error()
		}
		if _, err := fmt.Fprintln(out, res); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (r *repl) exec(name string, args []string) (string, error) {
	if name == "help" {
		return help(), nil
	}
	c, ok := replCommands[name]
	if !ok {
		return "", fmt.Errorf("%w %q", errUnknownCommand, name)
	}
	if len(args) < c.min || (c.max >= 0 && len(args) > c.max) {
		return "", fmt.Errorf("%w: %s %s", errUsage, name, c.usage)
	}
	res, err := c.run(r, args)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if res == "" {
		res = "ok"
	}
	return res, nil
}

func help() string {
	names := make([]string, 0, len(replCommands))
	for name := range replCommands {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimSpace(name + " " + replCommands[name].usage))
	}
	return b.String()
}

func (r *repl) vecNew(args []string) (string, error) {
	xy, err := floats(args)
	if err != nil {
		return "", err
	}
	return r.showVec(r.nameVec(r.arena.NewVector(xy[0], xy[1])))
}

func (r *repl) vecCopy(args []string) (string, error) {
	id, err := r.vec(args[0])
	if err != nil {
		return "", err
	}
	cp, err := r.arena.CopyVector(id)
	if err != nil {
		return "", err
	}
	return r.showVec(r.nameVec(cp))
}

func (r *repl) vecGet(args []string) (string, error) {
	if len(args) == 1 {
		return r.showValue(args[0])
	}
	id, err := r.vec(args[0])
	if err != nil {
		return "", err
	}
	f, err := r.arena.VectorField(id, args[1])
	if err != nil {
		return "", err
	}
	return formatFloat(f), nil
}

func (r *repl) vecSet(args []string) (string, error) {
	id, err := r.vec(args[0])
	if err != nil {
		return "", err
	}
	f, err := parseFloat(args[2])
	if err != nil {
		return "", err
	}
	return "", r.arena.SetVectorField(id, args[1], f)
}

func (r *repl) vecAddScaled(args []string) (string, error) {
	id, err := r.vec(args[0])
	if err != nil {
		return "", err
	}
	rest := args[1:]
	if len(rest)%2 != 0 {
		return "", fmt.Errorf("%w: vector/scale pairs, got %d values", errUsage, len(rest))
	}
	pairs := make([]binding.ScaledRef, 0, len(rest)/2)
	for i := 0; i < len(rest); i += 2 {
		v, err := r.vec(rest[i])
		if err != nil {
			return "", err
		}
		s, err := parseFloat(rest[i+1])
		if err != nil {
			return "", err
		}
		pairs = append(pairs, binding.ScaledRef{V: v, Scale: s})
	}
	if err := r.arena.AddScaled(id, pairs...); err != nil {
		return "", err
	}
	return r.showValue(args[0])
}

func (r *repl) vecNormalize(args []string) (string, error) {
	id, err := r.vec(args[0])
	if err != nil {
		return "", err
	}
	if err := r.arena.Normalize(id); err != nil {
		return "", err
	}
	return r.showValue(args[0])
}

func (r *repl) vecDot(args []string) (string, error) {
	a, err := r.vec(args[0])
	if err != nil {
		return "", err
	}
	b, err := r.vec(args[1])
	if err != nil {
		return "", err
	}
	d, err := r.arena.Dot(a, b)
	if err != nil {
		return "", err
	}
	return formatFloat(d), nil
}

func (r *repl) vecFree(args []string) (string, error) {
	id, err := r.vec(args[0])
	if err != nil {
		return "", err
	}
	if err := r.arena.FreeVector(id); err != nil {
		return "", err
	}
	delete(r.vecs, args[0])
	return "", nil
}

func (r *repl) polyNew(args []string) (string, error) {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("count %q: %w", args[0], err)
	}
	id, err := r.arena.NewPolygon(n)
	if err != nil {
		return "", err
	}
	return r.namePoly(id), nil
}

func (r *repl) polyCoords(args []string) (string, error) {
	coords, err := floats(args)
	if err != nil {
		return "", err
	}
	id, err := r.arena.NewPolygonCoords(coords...)
	if err != nil {
		return "", err
	}
	return r.namePoly(id), nil
}

func (r *repl) polyLen(args []string) (string, error) {
	id, err := r.poly(args[0])
	if err != nil {
		return "", err
	}
	n, err := r.arena.PolygonLen(id)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(n), nil
}

func (r *repl) polyVertex(args []string) (string, error) {
	id, err := r.poly(args[0])
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return "", fmt.Errorf("index %q: %w", args[1], err)
	}
	vid, ok, err := r.arena.PolygonVertex(id, n)
	if err != nil {
		return "", err
	}
	if !ok {
		return "nil", nil
	}
	return r.showVec(r.nameVec(vid))
}

func (r *repl) polySet(args []string) (string, error) {
	id, err := r.poly(args[0])
	if err != nil {
		return "", err
	}
	coords, err := floats(args[1:])
	if err != nil {
		return "", err
	}
	return "", r.arena.SetPolygon(id, coords...)
}

func (r *repl) polyTranslate(args []string) (string, error) {
	id, err := r.poly(args[0])
	if err != nil {
		return "", err
	}
	off, err := r.vec(args[1])
	if err != nil {
		return "", err
	}
	s, err := parseFloat(args[2])
	if err != nil {
		return "", err
	}
	return "", r.arena.TranslatePolygon(id, off, s)
}

func (r *repl) polyBounds(args []string) (string, error) {
	id, err := r.poly(args[0])
	if err != nil {
		return "", err
	}
	center, radius, err := r.arena.BoundingCircle(id)
	if err != nil {
		return "", err
	}
	c, err := r.showVec(r.nameVec(center))
	if err != nil {
		return "", err
	}
	return c + " r " + formatFloat(radius), nil
}

func (r *repl) polyFree(args []string) (string, error) {
	id, err := r.poly(args[0])
	if err != nil {
		return "", err
	}
	if err := r.arena.FreePolygon(id); err != nil {
		return "", err
	}
	delete(r.polys, args[0])
	return "", nil
}

func (r *repl) circleCircleCheck(args []string) (string, error) {
	a, ra, err := r.circle(args[0], args[1])
	if err != nil {
		return "", err
	}
	b, rb, err := r.circle(args[2], args[3])
	if err != nil {
		return "", err
	}
	hit, err := r.arena.CircleCircleCheck(a, ra, b, rb)
	return strconv.FormatBool(hit), err
}

func (r *repl) circleCircle(args []string) (string, error) {
	a, ra, err := r.circle(args[0], args[1])
	if err != nil {
		return "", err
	}
	b, rb, err := r.circle(args[2], args[3])
	if err != nil {
		return "", err
	}
	return r.showHit(r.arena.CircleCircle(a, ra, b, rb))
}

func (r *repl) polyPolyCheck(args []string) (string, error) {
	a, err := r.poly(args[0])
	if err != nil {
		return "", err
	}
	b, err := r.poly(args[1])
	if err != nil {
		return "", err
	}
	hit, err := r.arena.PolyPolyCheck(a, b)
	return strconv.FormatBool(hit), err
}

func (r *repl) polyPoly(args []string) (string, error) {
	a, err := r.poly(args[0])
	if err != nil {
		return "", err
	}
	b, err := r.poly(args[1])
	if err != nil {
		return "", err
	}
	return r.showHit(r.arena.PolyPoly(a, b))
}

func (r *repl) circlePolyCheck(args []string) (string, error) {
	c, radius, err := r.circle(args[0], args[1])
	if err != nil {
		return "", err
	}
	p, err := r.poly(args[2])
	if err != nil {
		return "", err
	}
	hit, err := r.arena.CirclePolyCheck(c, radius, p)
	return strconv.FormatBool(hit), err
}

func (r *repl) circlePoly(args []string) (string, error) {
	c, radius, err := r.circle(args[0], args[1])
	if err != nil {
		return "", err
	}
	p, err := r.poly(args[2])
	if err != nil {
		return "", err
	}
	return r.showHit(r.arena.CirclePoly(c, radius, p))
}

func (r *repl) sword(args []string) (string, error) {
	c, radius, err := r.circle(args[0], args[1])
	if err != nil {
		return "", err
	}
	p, err := r.poly(args[2])
	if err != nil {
		return "", err
	}
	dir, depth, err := r.arena.Sword(c, radius, p)
	if err != nil {
		return "", err
	}
	v, err := r.showVec(r.nameVec(dir))
	if err != nil {
		return "", err
	}
	return v + " depth " + formatFloat(depth), nil
}

func (r *repl) live([]string) (string, error) {
	vecs, polys := r.arena.Live()
	return fmt.Sprintf("vectors %d polygons %d", vecs, polys), nil
}

func (r *repl) showHit(dir binding.VectorID, depth float32, hit bool, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if !hit {
		return "miss", nil
	}
	v, err := r.showVec(r.nameVec(dir))
	if err != nil {
		return "", err
	}
	return "hit " + v + " depth " + formatFloat(depth), nil
}

func (r *repl) nameVec(id binding.VectorID) string {
	r.nextV++
	name := "v" + strconv.Itoa(r.nextV)
	r.vecs[name] = id
	return name
}

func (r *repl) namePoly(id binding.PolygonID) string {
	r.nextP++
	name := "p" + strconv.Itoa(r.nextP)
	r.polys[name] = id
	return name
}

// showVec formats a named vector as "name (x, y)".
func (r *repl) showVec(name string) (string, error) {
	v, err := r.showValue(name)
	if err != nil {
		return "", err
	}
	return name + " " + v, nil
}

func (r *repl) showValue(name string) (string, error) {
	id, err := r.vec(name)
	if err != nil {
		return "", err
	}
	v, err := r.arena.Vector(id)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func (r *repl) vec(name string) (binding.VectorID, error) {
	id, ok := r.vecs[name]
	if !ok {
		return binding.VectorID{}, fmt.Errorf("vector %q: %w", name, errUnknownName)
	}
	return id, nil
}

func (r *repl) poly(name string) (binding.PolygonID, error) {
	id, ok := r.polys[name]
	if !ok {
		return binding.PolygonID{}, fmt.Errorf("polygon %q: %w", name, errUnknownName)
	}
	return id, nil
}

func (r *repl) circle(name, radius string) (binding.VectorID, float32, error) {
	id, err := r.vec(name)
	if err != nil {
		return binding.VectorID{}, 0, err
	}
	f, err := parseFloat(radius)
	return id, f, err
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("number %q: %w", s, err)
	}
	return float32(f), nil
}

func floats(args []string) ([]float32, error) {
	out := make([]float32, len(args))
	for i, s := range args {
		f, err := parseFloat(s)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
