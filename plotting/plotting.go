package plotting

import (
	"fmt"
	"path/filepath"
	"strings"

	"bitbucket.org/ctessum/sparse"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// FilePlotter renders each mask it receives as a png heatmap in a directory,
// numbered in call order so a rule's diagnostic stages sort together. Save
// failures are logged and skipped; diagnostics never abort a run.
type FilePlotter struct {
	Dir   string
	Log   *zap.SugaredLogger
	count int
}

func InitFilePlotter(dir string, log *zap.SugaredLogger) *FilePlotter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &FilePlotter{Dir: dir, Log: log}
}

func (fp *FilePlotter) Plot(label string, values *sparse.DenseArray) {
	fp.count++
	p := plot.New()
	p.Title.Text = label
	h := plotter.NewHeatMap(gridData{values}, moreland.SmoothBlueRed().Palette(255))
	p.Add(h)
	name := fmt.Sprintf("%03d_%v.png", fp.count, sanitize(label))
	err := p.Save(6*vg.Inch, 6*vg.Inch, filepath.Join(fp.Dir, name))
	if err != nil {
		fp.Log.Warnw("could not save diagnostic plot", "plot", name, "error", err.Error())
	}
}

func sanitize(label string) string {
	replacer := strings.NewReplacer(" ", "_", "(", "", ")", "", "/", "-", "<", "lt", ">", "gt")
	return replacer.Replace(strings.ToLower(label))
}

// gridData adapts a 2-d dense array to the plotter grid interface, with row
// zero drawn at the top as rasters are stored north up.
type gridData struct {
	arr *sparse.DenseArray
}

func (g gridData) Dims() (c, r int) { return g.arr.Shape[1], g.arr.Shape[0] }
func (g gridData) X(c int) float64  { return float64(c) }
func (g gridData) Y(r int) float64  { return float64(r) }
func (g gridData) Z(c, r int) float64 {
	return g.arr.Get(g.arr.Shape[0]-1-r, c)
}
