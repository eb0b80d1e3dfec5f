// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"github.com/spf13/cobra"
)

type facetsOutput struct {
	Genres    []string `json:"genres"`
	Tags      []string `json:"tags"`
	Languages []string `json:"languages"`
}

func newFacetsCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "Print the genre, tag and language lists of the seed catalogue",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			service, err := g.service()
			if err != nil {
				return err
			}

			context := command.Context()
			var output facetsOutput
			if output.Genres, err = service.PopularGenres(context); err != nil {
				return err
			}
			if output.Tags, err = service.AvailableTags(context); err != nil {
				return err
			}
			if output.Languages, err = service.AvailableLanguages(context); err != nil {
				return err
			}
			return g.print(output)
		},
	}
}
