// Package manifest renders a Go file listing the declarations pubif expanded,
// so Go tooling that drives a build can tell which members are gated.
package manifest

import (
	"io"

	"github.com/dave/jennifer/jen"

	"github.com/ecordell/pubif/internal/rewrite"
)

const helpersPath = "github.com/ecordell/pubif/helpers"

// VarName is the variable declared by the generated file.
const VarName = "GatedRecords"

// Write renders records as a Go file in package pkg.
func Write(w io.Writer, pkg string, records []rewrite.Record) error {
	buf := jen.NewFile(pkg)
	buf.PackageComment("Code generated by github.com/ecordell/pubif. DO NOT EDIT.")

	buf.Comment(VarName + " lists the declarations expanded by pubif, in file order.")
	buf.Var().Id(VarName).Op("=").Index().Qual(helpersPath, "Record").ValuesFunc(func(grp *jen.Group) {
		for _, r := range records {
			grp.Values(jen.Dict{
				jen.Id("Name"):      jen.Lit(r.Name),
				jen.Id("File"):      jen.Lit(r.File),
				jen.Id("Condition"): jen.Lit(r.Condition),
				jen.Id("Members"): jen.Index().Qual(helpersPath, "Member").ValuesFunc(func(members *jen.Group) {
					for _, m := range r.Members {
						members.Values(jen.Dict{
							jen.Id("Name"):    jen.Lit(m.Name),
							jen.Id("Visible"): jen.Lit(m.Visible),
						})
					}
				}),
			})
		}
	})

	return buf.Render(w)
}
