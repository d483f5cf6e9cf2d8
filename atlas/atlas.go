// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

/*

Package atlas parses the line-oriented texture atlas text format that
accompanies exported skeletons. Blocks are separated by blank lines: the
first line of a block names the page image, followed by key:value lines
for the page, then one entry per packed region.

Texture objects are the renderer's concern; the parser records names and
metadata only.

*/

package atlas

import (
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Format is a page's pixel format token.
type Format int

const (
	FormatUnknown Format = iota
	FormatAlpha
	FormatIntensity
	FormatLuminanceAlpha
	FormatRGB565
	FormatRGBA4444
	FormatRGB888
	FormatRGBA8888
)

// Filter is a page's texture filter token.
type Filter int

const (
	FilterUnknown Filter = iota
	FilterNearest
	FilterLinear
	FilterMipMap
	FilterMipMapNearestNearest
	FilterMipMapLinearNearest
	FilterMipMapNearestLinear
	FilterMipMapLinearLinear
)

// Wrap is a texture coordinate wrap mode.
type Wrap int

const (
	WrapClampToEdge Wrap = iota
	WrapRepeat
)

var formatNames = []string{"", "Alpha", "Intensity", "LuminanceAlpha", "RGB565", "RGBA4444", "RGB888", "RGBA8888"}

var filterNames = []string{"", "Nearest", "Linear", "MipMap", "MipMapNearestNearest", "MipMapLinearNearest",
	"MipMapNearestLinear", "MipMapLinearLinear"}

// Page is one texture page of an atlas.
type Page struct {
	Name   string
	Format Format

	MinFilter Filter
	MagFilter Filter

	UWrap Wrap
	VWrap Wrap

	Width  int
	Height int
}

// Region is one packed image within a page. U/V coordinates are
// precomputed from the pixel rectangle.
type Region struct {
	Page *Page
	Name string

	Rotate bool

	X, Y          int
	Width, Height int

	U, V   float32
	U2, V2 float32

	// Splits and Pads carry optional nine-patch metadata.
	Splits []int
	Pads   []int

	OriginalWidth  int
	OriginalHeight int
	OffsetX        int
	OffsetY        int
	Index          int
}

// Atlas is the parsed form of an atlas text file.
type Atlas struct {
	Pages   []*Page
	Regions []*Region
}

// FindRegion returns the first region with the given name or nil.
func (a *Atlas) FindRegion(name string) *Region {
	for _, region := range a.Regions {
		if region.Name == name {
			return region
		}
	}
	return nil
}

// Load reads and parses an atlas file.
func Load(filepath string) (*Atlas, error) {
	data, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read the atlas file %s", filepath)
	}
	return Parse(string(data))
}

// Parse parses atlas text.
func Parse(data string) (*Atlas, error) {
	p := &parser{lines: strings.Split(data, "\n")}
	atlas := new(Atlas)

	var page *Page
	for {
		line, ok := p.readLine()
		if !ok {
			break
		}
		if line == "" {
			page = nil
			continue
		}

		if page == nil {
			page = &Page{Name: line}
			atlas.Pages = append(atlas.Pages, page)
			if err := p.parsePage(page); err != nil {
				return nil, err
			}
			continue
		}

		region := &Region{Page: page, Name: line}
		atlas.Regions = append(atlas.Regions, region)
		if err := p.parseRegion(region); err != nil {
			return nil, err
		}
	}

	return atlas, nil
}

// parser walks the atlas lines, tracking the position for error context.
type parser struct {
	lines []string
	pos   int
}

func (p *parser) readLine() (string, bool) {
	if p.pos >= len(p.lines) {
		return "", false
	}
	line := strings.TrimSpace(p.lines[p.pos])
	p.pos++
	return line, true
}

// readValue consumes a "key: value" line and returns the value.
func (p *parser) readValue() (string, error) {
	line, ok := p.readLine()
	if !ok {
		return "", errors.Errorf("atlas truncated at line %d", p.pos)
	}
	colon := strings.Index(line, ":")
	if colon < 0 {
		return "", errors.Errorf("atlas line %d: expected 'key: value', got %q", p.pos, line)
	}
	return strings.TrimSpace(line[colon+1:]), nil
}

// readTuple consumes a "key: a,b[,c,d]" line and returns the values.
func (p *parser) readTuple() ([]string, error) {
	value, err := p.readValue()
	if err != nil {
		return nil, err
	}
	parts := strings.Split(value, ",")
	if len(parts) > 4 {
		return nil, errors.Errorf("atlas line %d: too many tuple values in %q", p.pos, value)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func (p *parser) readIntTuple(want int) ([]int, error) {
	parts, err := p.readTuple()
	if err != nil {
		return nil, err
	}
	if want > 0 && len(parts) != want {
		return nil, errors.Errorf("atlas line %d: expected %d tuple values, got %d", p.pos, want, len(parts))
	}
	values := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Wrapf(err, "atlas line %d: bad integer %q", p.pos, part)
		}
		values[i] = n
	}
	return values, nil
}

func indexOf(names []string, token string) int {
	for i := len(names) - 1; i >= 1; i-- {
		if names[i] == token {
			return i
		}
	}
	return 0
}

func (p *parser) parsePage(page *Page) error {
	tuple, err := p.readTuple()
	if err != nil {
		return err
	}

	// size is optional for atlases packed with an old TexturePacker.
	if len(tuple) == 2 {
		if page.Width, err = strconv.Atoi(tuple[0]); err != nil {
			return errors.Wrapf(err, "atlas line %d: bad page width", p.pos)
		}
		if page.Height, err = strconv.Atoi(tuple[1]); err != nil {
			return errors.Wrapf(err, "atlas line %d: bad page height", p.pos)
		}
		if tuple, err = p.readTuple(); err != nil {
			return err
		}
	}
	page.Format = Format(indexOf(formatNames, tuple[0]))

	filters, err := p.readTuple()
	if err != nil {
		return err
	}
	if len(filters) != 2 {
		return errors.Errorf("atlas line %d: expected two filter tokens", p.pos)
	}
	page.MinFilter = Filter(indexOf(filterNames, filters[0]))
	page.MagFilter = Filter(indexOf(filterNames, filters[1]))

	repeat, err := p.readValue()
	if err != nil {
		return err
	}
	page.UWrap = WrapClampToEdge
	page.VWrap = WrapClampToEdge
	switch repeat {
	case "none":
	case "x":
		page.UWrap = WrapRepeat
	case "y":
		page.VWrap = WrapRepeat
	case "xy":
		page.UWrap = WrapRepeat
		page.VWrap = WrapRepeat
	}

	return nil
}

func (p *parser) parseRegion(region *Region) error {
	rotate, err := p.readValue()
	if err != nil {
		return err
	}
	region.Rotate = rotate == "true"

	xy, err := p.readIntTuple(2)
	if err != nil {
		return err
	}
	region.X, region.Y = xy[0], xy[1]

	size, err := p.readIntTuple(2)
	if err != nil {
		return err
	}
	region.Width, region.Height = size[0], size[1]

	page := region.Page
	region.U = float32(region.X) / float32(page.Width)
	region.V = float32(region.Y) / float32(page.Height)
	if region.Rotate {
		region.U2 = float32(region.X+region.Height) / float32(page.Width)
		region.V2 = float32(region.Y+region.Width) / float32(page.Height)
	} else {
		region.U2 = float32(region.X+region.Width) / float32(page.Width)
		region.V2 = float32(region.Y+region.Height) / float32(page.Height)
	}

	// split is optional; pad is optional but only present with split.
	tuple, err := p.readIntTuple(0)
	if err != nil {
		return err
	}
	if len(tuple) == 4 {
		region.Splits = tuple
		if tuple, err = p.readIntTuple(0); err != nil {
			return err
		}
		if len(tuple) == 4 {
			region.Pads = tuple
			if tuple, err = p.readIntTuple(2); err != nil {
				return err
			}
		}
	}
	if len(tuple) != 2 {
		return errors.Errorf("atlas line %d: expected the orig tuple", p.pos)
	}
	region.OriginalWidth, region.OriginalHeight = tuple[0], tuple[1]

	offset, err := p.readIntTuple(2)
	if err != nil {
		return err
	}
	region.OffsetX, region.OffsetY = offset[0], offset[1]

	index, err := p.readValue()
	if err != nil {
		return err
	}
	region.Index, err = strconv.Atoi(index)
	if err != nil {
		return errors.Wrapf(err, "atlas line %d: bad region index", p.pos)
	}

	return nil
}
