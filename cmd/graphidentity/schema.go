package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gcanossa/graphidentity/internal/identity"
	"github.com/gcanossa/graphidentity/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the graph mapping for the identity entity types",
	RunE: func(cmd *cobra.Command, args []string) error {
		descriptors := []*schema.Descriptor{
			schema.DescribeValue(identity.User{}),
			schema.DescribeValue(identity.Role{}),
			schema.DescribeValue(identity.Claim{}),
			schema.DescribeValue(identity.Login{}),
		}

		out := make([]map[string]any, 0, len(descriptors))
		for _, d := range descriptors {
			fields := make([]map[string]any, 0, len(d.Fields))
			for _, f := range d.Fields {
				fields = append(fields, map[string]any{
					"name":     f.Name,
					"type":     f.Type.String(),
					"writable": f.Writable,
				})
			}
			entry := map[string]any{
				"type":   d.TypeName,
				"labels": d.Labels,
				"fields": fields,
			}
			if d.IDField != nil {
				entry["id"] = d.IDField.Name
			}
			out = append(out, entry)
		}

		data, err := yaml.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}
