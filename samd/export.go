package samd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

type planDocument struct {
	Family    string   `json:"family" yaml:"family"`
	Chip      string   `json:"chip" yaml:"chip"`
	FlashSize uint32   `json:"flashSize" yaml:"flashSize"`
	PageSize  uint32   `json:"pageSize" yaml:"pageSize"`
	RAMSize   uint32   `json:"ramSize" yaml:"ramSize"`
	Regions   []Region `json:"regions" yaml:"regions"`
}

func newPlanDocument(p *LayoutPlan) planDocument {
	return planDocument{
		Family:    p.Profile.Family.String(),
		Chip:      p.Profile.Name,
		FlashSize: p.Profile.FlashSize,
		PageSize:  p.Profile.PageSize,
		RAMSize:   p.Profile.RAMSize,
		Regions:   p.Regions(),
	}
}

func WriteJSON(w io.Writer, p *LayoutPlan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newPlanDocument(p))
}

func WriteYAML(w io.Writer, p *LayoutPlan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newPlanDocument(p)); err != nil {
		return err
	}
	return enc.Close()
}

// WriteText writes a human readable table of the plan.
func WriteText(w io.Writer, p *LayoutPlan) error {
	if _, err := fmt.Fprintf(w, "%s: %d bytes flash, %d byte pages\n", p.Profile.Name, p.Profile.FlashSize, p.Profile.PageSize); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REGION\tSTART\tEND\tSIZE")
	for _, r := range p.Regions() {
		fmt.Fprintf(tw, "%s\t0x%08X\t0x%08X\t%d\n", r.Name, r.Start, r.End(), r.Size)
	}
	return tw.Flush()
}

// WriteLinkerScript writes a GNU ld MEMORY command. Empty regions are left
// out because ld cannot place anything in them.
func WriteLinkerScript(w io.Writer, p *LayoutPlan) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "/* Flash layout for %s. */\n", p.Profile.Name)
	sb.WriteString("MEMORY\n{\n")
	for _, r := range p.Regions() {
		if r.Size == 0 {
			continue
		}
		fmt.Fprintf(&sb, "    %-16s (rx)  : ORIGIN = 0x%08X, LENGTH = 0x%08X\n", "FLASH_"+macroName(r.Name), r.Start, r.Size)
	}
	fmt.Fprintf(&sb, "    %-16s (rwx) : ORIGIN = 0x%08X, LENGTH = 0x%08X\n", "RAM", RAMStart, p.Profile.RAMSize)
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteHeader writes a C header defining the start, size and end of every
// region.
func WriteHeader(w io.Writer, p *LayoutPlan) error {
	var sb strings.Builder
	sb.WriteString("// Flash layout for " + p.Profile.Name + ". Do not edit.\n")
	sb.WriteString("#ifndef SAMD_FLASH_LAYOUT_H\n#define SAMD_FLASH_LAYOUT_H\n\n")
	fmt.Fprintf(&sb, "#define SAMD_FLASH_SIZE      0x%08X\n", p.Profile.FlashSize)
	fmt.Fprintf(&sb, "#define SAMD_FLASH_PAGE_SIZE 0x%08X\n", p.Profile.PageSize)
	fmt.Fprintf(&sb, "#define SAMD_RAM_SIZE        0x%08X\n", p.Profile.RAMSize)
	for _, r := range p.Regions() {
		name := macroName(r.Name)
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "#define SAMD_%s_START 0x%08X\n", name, r.Start)
		fmt.Fprintf(&sb, "#define SAMD_%s_SIZE  0x%08X\n", name, r.Size)
		fmt.Fprintf(&sb, "#define SAMD_%s_END   0x%08X\n", name, r.End())
	}
	sb.WriteString("\n#endif\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func macroName(name RegionName) string {
	return strings.ToUpper(string(name))
}
