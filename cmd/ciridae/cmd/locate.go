package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/GregoryLi360/ciridae-takehome/pkg/errors"
	"github.com/GregoryLi360/ciridae-takehome/pkg/estimate"
	"github.com/GregoryLi360/ciridae-takehome/pkg/geometry"
	"github.com/GregoryLi360/ciridae-takehome/pkg/locate"
	"github.com/GregoryLi360/ciridae-takehome/pkg/logging"
)

var locateOutput string

// locatedItem pairs an item with the boxes found for it, description box
// split per visual line for rendering.
type locatedItem struct {
	Room             string              `yaml:"room"`
	Description      string              `yaml:"description"`
	Page             int                 `yaml:"page"`
	Boxes            estimate.FieldBoxes `yaml:"boxes"`
	DescriptionRects []geometry.BBox     `yaml:"description_rects,omitempty"`
}

var locateCmd = &cobra.Command{
	Use:   "locate <estimate.yaml> <pages.yaml>",
	Short: "Find field bounding boxes for every line item",
	Long: `Locate searches each page's word index for every item's description,
quantity, unit, unit price, and total, and reports the bounding box found
for each field. Items on the same page are processed in document order and
never claim overlapping regions, so repeated rows resolve to distinct
spots. Fields that cannot be found are omitted rather than failing.

The pages file holds one entry per page: its words in reading order with
their boxes, and optionally its visual line boxes.`,
	Args: cobra.ExactArgs(2),
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().StringVarP(&locateOutput, "output", "o", "", "write results to a file instead of stdout")
	rootCmd.AddCommand(locateCmd)
}

func runLocate(_ *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	pages, err := loadPages(args[1])
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	log := logging.Default()
	claims := make(map[int]geometry.ClaimSet, len(pages))
	var located []locatedItem
	found, total := 0, 0

	for _, room := range doc.Rooms {
		for _, item := range room.Items {
			total++
			page, ok := pages[item.Page]
			if !ok {
				log.Warn().Int("page", item.Page).Str("room", room.Name).
					Msg("item references a page with no geometry; skipping")
				continue
			}

			pageClaims, exists := claims[item.Page]
			if !exists {
				pageClaims = geometry.NewClaimSet()
			}
			boxes, updated := locate.Fields(item, page, pageClaims)
			claims[item.Page] = updated

			entry := locatedItem{
				Room:        room.Name,
				Description: item.Description,
				Page:        item.Page,
				Boxes:       boxes,
			}
			if !boxes.Description.IsEmpty() {
				found++
				entry.DescriptionRects = locate.SplitByLines(boxes.Description, page.Lines)
			}
			located = append(located, entry)
		}
	}

	log.Info().Int("found", found).Int("total", total).Msg("located description boxes")

	data, err := yaml.Marshal(located)
	if err != nil {
		return fmt.Errorf("encoding located boxes: %w", err)
	}
	if locateOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(locateOutput, data, 0o644); err != nil { //nolint:gosec // report file
		return errors.WrapIO("write", locateOutput, err)
	}
	return nil
}

// loadPages reads page geometry keyed by page index.
func loadPages(path string) (map[int]geometry.Page, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied input path
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var pages map[int]geometry.Page
	if err := yaml.Unmarshal(data, &pages); err != nil {
		return nil, &errors.ValidationError{
			Document: path,
			Message:  fmt.Sprintf("parsing page geometry: %v", err),
		}
	}
	return pages, nil
}
