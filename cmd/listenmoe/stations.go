package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/listenmoe-ingest/internal/domain/station"
)

var stationsJSON bool

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List the station catalog",
	Args:  cobra.NoArgs,
	RunE:  runStations,
}

func init() {
	stationsCmd.Flags().BoolVarP(&stationsJSON, "json", "j", false, "output as JSON")
	rootCmd.AddCommand(stationsCmd)
}

func runStations(cmd *cobra.Command, args []string) error {
	all := station.All()

	if stationsJSON {
		output := make([]map[string]string, 0, len(all))
		for _, st := range all {
			output = append(output, map[string]string{
				"name":         st.Name(),
				"display_name": st.DisplayName(),
				"stream_url":   st.StreamURL(),
				"ws_url":       st.WSURL(),
			})
		}
		return json.NewEncoder(os.Stdout).Encode(output)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISPLAY\tSTREAM\tGATEWAY")
	for _, st := range all {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", st.Name(), st.DisplayName(), st.StreamURL(), st.WSURL())
	}
	return w.Flush()
}
