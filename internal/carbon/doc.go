// Package carbon implements the emissions estimation model.
//
// The model is a fixed linear chain: average HTML weight is scaled to
// an estimated full page weight, converted to transferred gigabytes,
// multiplied by an energy cost per gigabyte and a grid carbon
// intensity, then extrapolated over monthly traffic and a year. Every
// coefficient is an explicit assumption carried on the resulting
// estimate, so two estimates are comparable only when their
// assumptions match.
package carbon
