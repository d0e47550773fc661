package main

import (
	"strconv"
	"strings"
)

// Viewport breakpoints, in CSS pixels.
const (
	breakpointSmall = 640
	breakpointLarge = 1024
)

// ItemsPerPage maps a viewport hint to the number of cards shown at once.
// It accepts the size classes "sm", "md" and "lg" or a width in pixels.
// Anything else is treated as a large screen.
func ItemsPerPage(viewport string) int {
	viewport = strings.ToLower(strings.TrimSpace(viewport))
	switch viewport {
	case "sm":
		return 1
	case "md":
		return 2
	case "lg", "":
		return 4
	}
	width, err := strconv.Atoi(viewport)
	if err != nil || width <= 0 {
		return 4
	}
	switch {
	case width < breakpointSmall:
		return 1
	case width < breakpointLarge:
		return 2
	default:
		return 4
	}
}

// Carousel is a sliding window over Total items, PerPage wide.
// Index is always within [0, MaxIndex()].
type Carousel struct {
	Total   int
	PerPage int
	Index   int
}

// NewCarousel builds a carousel and clamps index into range.
func NewCarousel(total, perPage, index int) Carousel {
	if total < 0 {
		total = 0
	}
	if perPage < 1 {
		perPage = 1
	}
	c := Carousel{Total: total, PerPage: perPage}
	c.Index = c.clamp(index)
	return c
}

func (c Carousel) MaxIndex() int {
	return max(0, c.Total-c.PerPage)
}

func (c Carousel) clamp(i int) int {
	return min(max(i, 0), c.MaxIndex())
}

// Next advances by one unless that would pass MaxIndex.
func (c Carousel) Next() Carousel {
	if c.Index+1 <= c.MaxIndex() {
		c.Index++
	}
	return c
}

// Prev steps back by one, stopping at zero.
func (c Carousel) Prev() Carousel {
	c.Index = max(0, c.Index-1)
	return c
}

func (c Carousel) HasPrev() bool { return c.Index > 0 }

func (c Carousel) HasNext() bool { return c.Index < c.MaxIndex() }

// Visible returns the half-open range of item indices currently shown.
func (c Carousel) Visible() (start, end int) {
	return c.Index, min(c.Index+c.PerPage, c.Total)
}

// Offset is the translateX percentage of the track. Arabic layouts slide the
// other way.
func (c Carousel) Offset(rtl bool) float64 {
	pct := float64(c.Index) * (100 / float64(c.PerPage))
	if rtl || pct == 0 {
		return pct
	}
	return -pct
}

type Dot struct {
	Index  int
	Active bool
}

// Dots returns one pagination dot per item. Dots past MaxIndex still render
// but select the clamped index.
func (c Carousel) Dots() []Dot {
	dots := make([]Dot, c.Total)
	for i := range dots {
		dots[i] = Dot{Index: c.clamp(i), Active: i == c.Index}
	}
	return dots
}
