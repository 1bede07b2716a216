// Package viz renders a sampled function and its critical points in the
// terminal.
//
//   - [Figure]: the curve sampled over the plot domain plus its markers
//   - [RenderASCII]: asciigraph line plot, one colored series per classification
//   - [RenderBraille]: the same figure on a braille [Canvas]
//   - [DefinitionsPanel]: the glossary shown before a session starts
//
// Maxima are drawn red, minima blue and saddle points yellow under the
// classic [Theme]; the mono theme drops all color.
package viz
