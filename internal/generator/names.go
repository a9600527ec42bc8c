package generator

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

// Word pools for assembling plausible corporate file and folder names.
// Department-specific pools keep Finance folders full of budgets and
// Engineering folders full of specs instead of uniform noise.

var folderWords = map[string][]string{
	"Finance":     {"Budgets", "Forecasts", "Audits", "Invoices", "Payroll", "Quarterly Reports"},
	"Engineering": {"Specs", "Designs", "Releases", "Postmortems", "Architecture", "Prototypes"},
	"HR":          {"Policies", "Onboarding", "Reviews", "Benefits", "Recruiting", "Training"},
	"Legal":       {"Contracts", "Compliance", "NDAs", "Litigation", "Trademarks", "Filings"},
	"Marketing":   {"Campaigns", "Brand Assets", "Events", "Social", "Analytics", "Collateral"},
	"Sales":       {"Pipelines", "Proposals", "Accounts", "Territories", "Quotas", "Renewals"},
	"IT":          {"Runbooks", "Inventory", "Licenses", "Backups", "Tickets", "Network Maps"},
}

var genericFolderWords = []string{
	"Archive", "Shared", "Projects", "Drafts", "Final", "Old", "New Folder", "Misc", "2023", "2024",
}

var fileStems = map[string][]string{
	"Finance":     {"budget", "forecast", "expense_report", "invoice", "ledger", "reconciliation"},
	"Engineering": {"design_doc", "spec", "changelog", "benchmark", "retro_notes", "diagram"},
	"HR":          {"policy", "handbook", "review", "offer_letter", "org_chart", "survey_results"},
	"Legal":       {"contract", "nda", "amendment", "filing", "opinion", "term_sheet"},
	"Marketing":   {"campaign_brief", "press_release", "deck", "asset_list", "calendar", "report"},
	"Sales":       {"proposal", "quote", "account_plan", "pipeline", "forecast", "win_loss"},
	"IT":          {"runbook", "inventory", "license_audit", "incident_report", "topology", "config_dump"},
}

var genericFileStems = []string{
	"notes", "summary", "draft", "final", "meeting_minutes", "todo", "backup", "copy_of_copy",
}

// extProfile pairs an extension with a size range (KB) and a relative
// weight. Office documents dominate; media and data files are rarer but
// much larger, which is what makes the size distribution look real.
type extProfile struct {
	ext    string
	minKB  int64
	maxKB  int64
	weight int
}

var extProfiles = []extProfile{
	{".docx", 24, 512, 22},
	{".xlsx", 16, 2048, 20},
	{".pptx", 512, 20480, 10},
	{".pdf", 64, 4096, 18},
	{".txt", 1, 64, 8},
	{".csv", 4, 8192, 7},
	{".msg", 32, 512, 5},
	{".jpg", 256, 6144, 4},
	{".png", 64, 2048, 3},
	{".zip", 1024, 65536, 2},
	{".mp4", 10240, 262144, 1},
}

var totalExtWeight = func() int {
	total := 0
	for _, p := range extProfiles {
		total += p.weight
	}
	return total
}()

// pickProfile draws an extension profile by weight.
func pickProfile(rng *rand.Rand) extProfile {
	n := rng.Intn(totalExtWeight)
	for _, p := range extProfiles {
		n -= p.weight
		if n < 0 {
			return p
		}
	}
	return extProfiles[0]
}

// pickSizeKB draws a size from the profile's range, skewed toward the
// small end the way real document sizes are.
func pickSizeKB(rng *rand.Rand, p extProfile) int64 {
	span := p.maxKB - p.minKB
	if span <= 0 {
		return p.minKB
	}
	// Square the unit draw: most files land near minKB.
	u := rng.Float64()
	return p.minKB + int64(u*u*float64(span))
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

func folderPool(department string) []string {
	if pool, ok := folderWords[department]; ok {
		return pool
	}
	return genericFolderWords
}

func stemPool(department string) []string {
	if pool, ok := fileStems[department]; ok {
		return pool
	}
	return genericFileStems
}

var unsafeFilenameChars = regexp.MustCompile(`[\x00\\/:*?"<>|]`)

// SanitizeFilename strips characters that are illegal on common
// filesystems and guards against empty or dot-leading names.
func SanitizeFilename(filename string) string {
	safe := unsafeFilenameChars.ReplaceAllString(filename, "-")

	for strings.HasPrefix(safe, ".") || strings.HasPrefix(safe, "-") {
		safe = safe[1:]
	}
	if safe == "" {
		safe = "untitled"
	}
	return safe
}

// fileName assembles a plausible name like "budget_2024_v3.xlsx".
func fileName(rng *rand.Rand, department, ext string) string {
	stem := pick(rng, stemPool(department))

	switch rng.Intn(4) {
	case 0:
		stem = fmt.Sprintf("%s_%d", stem, 2019+rng.Intn(7))
	case 1:
		stem = fmt.Sprintf("%s_v%d", stem, 1+rng.Intn(9))
	case 2:
		stem = fmt.Sprintf("%s_Q%d", stem, 1+rng.Intn(4))
	}
	return SanitizeFilename(stem) + ext
}
