package main

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tomz197/collide/internal/collision"
	"github.com/tomz197/collide/internal/scene"
	"github.com/tomz197/collide/internal/vector"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type contactDoc struct {
	A     string     `json:"a"`
	B     string     `json:"b"`
	Dir   [2]float32 `json:"dir"`
	Depth float32    `json:"depth"`
}

type swordDoc struct {
	Probe  string     `json:"probe"`
	Target string     `json:"target"`
	Dir    [2]float32 `json:"dir"`
	Depth  float32    `json:"depth"`
}

func dirOf(r collision.Result) [2]float32 {
	x, y := r.Dir.XY()
	return [2]float32{x, y}
}

type boundsDoc struct {
	Name   string     `json:"name"`
	Kind   string     `json:"kind"`
	Center [2]float32 `json:"center"`
	Radius float32    `json:"radius"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "List every colliding pair of shapes with its minimum translation.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shapes := a.scene.Shapes
			if a.scene.Probe != nil {
				shapes = append(shapes[:len(shapes):len(shapes)], a.scene.Probe)
			}
			contacts, err := scene.Evaluate(cmd.Context(), shapes, a.opts.Workers)
			if err != nil {
				return err
			}
			a.log.Info("scene checked", zap.Int("shapes", len(shapes)), zap.Int("contacts", len(contacts)))

			out := cmd.OutOrStdout()
			if a.opts.JSON {
				docs := make([]contactDoc, 0, len(contacts))
				for _, c := range contacts {
					docs = append(docs, contactDoc{A: c.A.Name, B: c.B.Name, Dir: dirOf(c.Result), Depth: c.Result.Depth})
				}
				return writeJSON(out, docs)
			}
			if len(contacts) == 0 {
				_, err := fmt.Fprintln(out, "no collisions")
				return err
			}
			for _, c := range contacts {
				if _, err := fmt.Fprintf(out, "%s %s dir %s depth %.2f\n",
					c.A.Name, c.B.Name, c.Result.Dir, c.Result.Depth); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newSwordCmd(a *app) *cobra.Command {
	var probeName, targetName string
	cmd := &cobra.Command{
		Use:   "sword",
		Short: "Run the directional probe of a circle against a polygon's first edge.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			probe := a.scene.Probe
			if probeName != "" || probe == nil {
				var err error
				if probe, err = a.scene.Find(probeName); err != nil {
					return err
				}
			}
			target, err := a.scene.Find(targetName)
			if err != nil {
				return err
			}
			res, err := scene.Sword(probe, target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.opts.JSON {
				return writeJSON(out, swordDoc{Probe: probe.Name, Target: target.Name, Dir: dirOf(res), Depth: res.Depth})
			}
			_, err = fmt.Fprintf(out, "sword %s -> %s dir %s depth %.2f\n", probe.Name, target.Name, res.Dir, res.Depth)
			return err
		},
	}
	cmd.Flags().StringVar(&probeName, "probe", "", "circle shape (default: the scene probe)")
	cmd.Flags().StringVar(&targetName, "target", "", "polygon shape")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newBoundsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bounds",
		Short: "Print the bounding circle of every shape.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shapes := a.scene.Shapes
			if a.scene.Probe != nil {
				shapes = append(shapes[:len(shapes):len(shapes)], a.scene.Probe)
			}
			docs := make([]boundsDoc, 0, len(shapes))
			for _, s := range shapes {
				c, r := s.Bounds()
				docs = append(docs, boundsDoc{Name: s.Name, Kind: s.Kind.String(), Center: [2]float32{c.X, c.Y}, Radius: r})
			}

			out := cmd.OutOrStdout()
			if a.opts.JSON {
				return writeJSON(out, docs)
			}
			for _, d := range docs {
				if _, err := fmt.Fprintf(out, "%s %s center %s radius %.2f\n",
					d.Name, d.Kind, vector.New(d.Center[0], d.Center[1]), d.Radius); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
