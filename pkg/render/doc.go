// Package render serializes frontier reports and ancestor subgraphs into
// the supported output formats.
//
// # Report Formats
//
// [Write] renders a report as TOML (the default), JSON, or a standalone
// HTML page. [ParseFormat] validates format names from user input:
//
//	format, err := render.ParseFormat("toml")
//	err = render.Write(report, format, os.Stdout)
//
// All formats emit frontier sources in sorted order, so the output for a
// fixed report is byte-stable across runs.
//
// # Graph Visualization
//
// [ToDOT] converts the ancestor subgraph of an analysis to Graphviz DOT,
// highlighting boundary-crossing edges, and [RenderSVG] rasterizes the
// DOT source through the embedded Graphviz engine:
//
//	dot := render.ToDOT(sub, target.ID)
//	svg, err := render.RenderSVG(ctx, dot)
package render
