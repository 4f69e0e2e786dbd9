// Provides a declarative description of 3D shadow plots.
// Scene files are small XML documents listing point sets, line
// paths and the shadow configuration; they are parsed into an
// abstract representation which can then be replayed on any
// shadow3d.Surface .
package shadowscene

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/benoitkugler/plot3dshadows/shadow3d"

	"golang.org/x/net/html/charset"
)

// ErrorMode determines if the parser ignores, errors out, or logs
// a warning when it finds an element it does not handle.
type ErrorMode uint8

const (
	IgnoreErrorMode ErrorMode = iota
	WarnErrorMode
	StrictErrorMode
)

// ItemKind distinguishes the two dataset flavors of a scene.
type ItemKind uint8

const (
	Points ItemKind = iota // drawn through the point set primitive
	Path                   // drawn through the polyline primitive
)

// Item is one dataset of a scene.
type Item struct {
	Kind    ItemKind
	X, Y, Z []float64
	Style   shadow3d.Style
	// Ratio overrides the scene shadow opacity ratio for this
	// dataset only, 0 meaning no override.
	Ratio float64
}

// Scene holds data from a parsed scene file.
// See the `Draw` method to use it.
type Scene struct {
	Title                  string
	XLabel, YLabel, ZLabel string

	// Ratio is the default shadow opacity ratio, 0 meaning
	// shadow3d.DefaultRatio.
	Ratio     float64
	Planes    []shadow3d.Plane
	Positions map[shadow3d.Plane]shadow3d.Position

	Items []Item

	ShowAxes    bool
	AxesPartial float64
	ShowPlanes  bool

	xlim, ylim, zlim *[2]float64 // explicit bounds, overriding autoscale
}

// sceneCursor is used while parsing scene files
type sceneCursor struct {
	scene     *Scene
	errorMode ErrorMode

	current *Item // non nil inside a points or path element
	text    strings.Builder
}

// ReadSceneStream reads a scene from the given io.Reader.
// errMode determines if the parser ignores, errors out, or logs a
// warning if it does not handle an element found in the file.
func ReadSceneStream(stream io.Reader, errMode ErrorMode) (*Scene, error) {
	scene := &Scene{Positions: make(map[shadow3d.Plane]shadow3d.Position)}
	cursor := &sceneCursor{scene: scene, errorMode: errMode}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenScene := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenScene {
					return nil, errors.New("invalid scene xml file")
				}
				break
			}
			return scene, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			if !seenScene && se.Name.Local != "scene" {
				return nil, fmt.Errorf("invalid scene file: root element is <%s>", se.Name.Local)
			}
			seenScene = true
			if err = cursor.readStartElement(se); err != nil {
				return scene, err
			}
		case xml.EndElement:
			if err = cursor.readEndElement(se); err != nil {
				return scene, err
			}
		case xml.CharData:
			if cursor.current != nil {
				cursor.text.Write(se)
			}
		}
	}
	return scene, nil
}

// ReadScene reads a scene from the named file.
// See ReadSceneStream for the errMode semantics.
func ReadScene(path string, errMode ErrorMode) (*Scene, error) {
	fin, errf := os.Open(path)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadSceneStream(fin, errMode)
}

func (c *sceneCursor) readStartElement(se xml.StartElement) error {
	switch se.Name.Local {
	case "scene":
		return c.readSceneAttrs(se.Attr)
	case "config":
		return c.readConfigAttrs(se.Attr)
	case "points":
		return c.startItem(Points, se.Attr)
	case "path":
		return c.startItem(Path, se.Attr)
	case "axes":
		c.scene.ShowAxes = true
		c.scene.AxesPartial = 1
		for _, attr := range se.Attr {
			if attr.Name.Local == "partial" {
				partial, err := strconv.ParseFloat(attr.Value, 64)
				if err != nil || partial <= 0 || partial > 1 {
					return fmt.Errorf("invalid axes partial '%s'", attr.Value)
				}
				c.scene.AxesPartial = partial
			}
		}
	case "planes":
		c.scene.ShowPlanes = true
	default:
		errStr := "cannot process element " + se.Name.Local
		if c.errorMode == StrictErrorMode {
			return errors.New(errStr)
		} else if c.errorMode == WarnErrorMode {
			log.Println(errStr)
		}
	}
	return nil
}

func (c *sceneCursor) readEndElement(se xml.EndElement) error {
	switch se.Name.Local {
	case "points", "path":
		if c.current == nil {
			return nil
		}
		x, y, z, err := parseCoords(c.text.String())
		if err != nil {
			return err
		}
		c.current.X, c.current.Y, c.current.Z = x, y, z
		c.scene.Items = append(c.scene.Items, *c.current)
		c.current = nil
		c.text.Reset()
	}
	return nil
}

func (c *sceneCursor) readSceneAttrs(attrs []xml.Attr) error {
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "title":
			c.scene.Title = attr.Value
		case "xlabel":
			c.scene.XLabel = attr.Value
		case "ylabel":
			c.scene.YLabel = attr.Value
		case "zlabel":
			c.scene.ZLabel = attr.Value
		case "xlim":
			c.scene.xlim, err = parseLim(attr.Value)
		case "ylim":
			c.scene.ylim, err = parseLim(attr.Value)
		case "zlim":
			c.scene.zlim, err = parseLim(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *sceneCursor) readConfigAttrs(attrs []xml.Attr) error {
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "ratio":
			ratio, err := strconv.ParseFloat(attr.Value, 64)
			if err != nil || ratio <= 0 {
				return fmt.Errorf("invalid shadow ratio '%s'", attr.Value)
			}
			c.scene.Ratio = ratio
		case "planes":
			c.scene.Planes = nil
			for _, chunk := range strings.Split(attr.Value, ",") {
				plane, err := shadow3d.ParsePlane(strings.TrimSpace(chunk))
				if err != nil {
					return err
				}
				c.scene.Planes = append(c.scene.Planes, plane)
			}
		case "positions":
			for _, chunk := range strings.Split(attr.Value, ",") {
				parts := strings.SplitN(chunk, ":", 2)
				if len(parts) != 2 {
					return fmt.Errorf("invalid shadow positions entry '%s'", chunk)
				}
				plane, err := shadow3d.ParsePlane(strings.TrimSpace(parts[0]))
				if err != nil {
					return err
				}
				pos, err := shadow3d.ParsePosition(plane, strings.TrimSpace(parts[1]))
				if err != nil {
					return err
				}
				c.scene.Positions[plane] = pos
			}
		}
	}
	return nil
}

// startItem opens a points or path element, reading its style from
// the attributes. Numeric entries are converted; the other ones are
// passed through as strings.
func (c *sceneCursor) startItem(kind ItemKind, attrs []xml.Attr) error {
	item := Item{Kind: kind, Style: shadow3d.Style{}}
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "shadow-ratio":
			ratio, err := strconv.ParseFloat(attr.Value, 64)
			if err != nil || ratio <= 0 {
				return fmt.Errorf("invalid shadow-ratio '%s'", attr.Value)
			}
			item.Ratio = ratio
		case "alpha", "opacity", "size", "linewidth":
			f, err := strconv.ParseFloat(attr.Value, 64)
			if err != nil {
				return fmt.Errorf("invalid numeric attribute %s='%s'", attr.Name.Local, attr.Value)
			}
			item.Style[attr.Name.Local] = f
		default:
			item.Style[attr.Name.Local] = attr.Value
		}
	}
	c.current = &item
	c.text.Reset()
	return nil
}

// parseCoords reads whitespace separated x,y,z triples.
func parseCoords(text string) (x, y, z []float64, err error) {
	for _, field := range strings.Fields(text) {
		parts := strings.Split(field, ",")
		if len(parts) != 3 {
			return nil, nil, nil, fmt.Errorf("invalid coordinate triple '%s'", field)
		}
		var triple [3]float64
		for i, part := range parts {
			triple[i], err = strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("invalid coordinate '%s' in '%s'", part, field)
			}
		}
		x = append(x, triple[0])
		y = append(y, triple[1])
		z = append(z, triple[2])
	}
	return x, y, z, nil
}

// parseLim reads an explicit axis bound "min:max".
func parseLim(value string) (*[2]float64, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid axis bounds '%s'", value)
	}
	min, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	max, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil || max < min {
		return nil, fmt.Errorf("invalid axis bounds '%s'", value)
	}
	return &[2]float64{min, max}, nil
}
