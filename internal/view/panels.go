package view

import (
	"fmt"
	"net/url"

	"jobalert-web/internal/domain/job"
)

type NavItem struct {
	Label string
	Href  string
}

type ColoredLink struct {
	Name  string
	Color string
}

type EducationLink struct {
	Label string
	Count string
	Level job.EducationLevel
}

func (e EducationLink) Href() string {
	return "/jobs?" + url.Values{job.FilterEducationLevel: {string(e.Level)}}.Encode()
}

type UpdateItem struct {
	Title    string
	Date     string
	Category string
	Status   string
}

// CategoryRoute is a shortcut path that lands on a category-filtered listing.
type CategoryRoute struct {
	Path     string
	Category job.Category
}

func (r CategoryRoute) Target() string {
	return "/jobs?" + url.Values{job.FilterCategory: {string(r.Category)}}.Encode()
}

var NavMenu = []NavItem{
	{Label: "Home", Href: "/"},
	{Label: "All India Govt Jobs", Href: "/all-india-jobs"},
	{Label: "State Govt Jobs", Href: "/state-jobs"},
	{Label: "Bank Jobs", Href: "/bank-jobs"},
	{Label: "Teaching Jobs", Href: "/teaching-jobs"},
	{Label: "Engineering Jobs", Href: "/engineering-jobs"},
	{Label: "Railway Jobs", Href: "/railway-jobs"},
	{Label: "Police/Defence Jobs", Href: "/police-defence"},
	{Label: "Result/Online Jobs", Href: "/results"},
}

var CategoryRoutes = []CategoryRoute{
	{Path: "/all-india-jobs", Category: job.CategoryCentralGovt},
	{Path: "/bank-jobs", Category: job.CategoryBanking},
	{Path: "/teaching-jobs", Category: job.CategoryTeaching},
	{Path: "/engineering-jobs", Category: job.CategoryEngineering},
	{Path: "/railway-jobs", Category: job.CategoryRailway},
	{Path: "/police-defence", Category: job.CategoryPoliceDefence},
}

var NotificationLinks = []string{
	"Latest Notifications",
	"Government News",
	"Search Jobs",
	"State Jobs",
	"Select List",
	"Anganwadi/Outsourced",
	"EDUCATION",
	"Entrance",
	"Announcements",
	"Sarkari Result",
	"Admit Card",
	"Exam Results",
	"Answer Key",
	"Cutoff Marks",
	"Written Marks",
	"Interview Results",
	"EMPLOYMENT",
	"Eligibility",
	"Syllabus",
	"Question Paper",
	"Selection Process",
	"Previous Papers",
	"Games",
}

var FeaturedPostings = []ColoredLink{
	{Name: "NHPC 361 Apprentices Online Form 2025", Color: "blue"},
	{Name: "Indian Coast Guard Assistant Commandant Online Form 2025", Color: "orange"},
	{Name: "Bank of Baroda 2500 LBO Online Form 2025", Color: "red"},
	{Name: "IBPS PO/MT 5208 Online Form 2025", Color: "green"},
	{Name: "Banking Group D Apply Online", Color: "purple"},
	{Name: "CISF 1124 Constable Apply Online", Color: "navy"},
	{Name: "SBI 6238 Technician Vacancy 2025", Color: "pink"},
	{Name: "SBI PO Online Form 2025", Color: "crimson"},
	{Name: "AIMS 4597 Various Vacancy Online Form 2025", Color: "violet"},
}

var EducationLinks = []EducationLink{
	{Label: "10TH", Count: "17,146", Level: job.Education10th},
	{Label: "Diploma", Count: "4,667", Level: job.EducationDiploma},
	{Label: "B.Com", Count: "2,698", Level: job.EducationBCom},
	{Label: "ITI", Count: "18,198", Level: job.EducationITI},
	{Label: "B.Tech/B.E", Count: "16,791", Level: job.EducationBTech},
	{Label: "Any Graduate", Count: "59,792", Level: job.EducationGraduate},
	{Label: "12TH", Count: "35,719", Level: job.Education12th},
	{Label: "B.Sc/B.E", Count: "13,387", Level: job.EducationBSc},
	{Label: "Any Post Graduate", Count: "41,669", Level: job.EducationPostGraduate},
}

var LatestUpdates = []UpdateItem{
	{Title: "BHEL 515 Artisan Online Form 2025", Date: "2025-07-13", Category: "Engineering", Status: "Active"},
	{Title: "Railway Apprentice Online Form 2025", Date: "2025-07-12", Category: "Railway", Status: "Active"},
	{Title: "Indian Coast Guard Assistant Commandant Online Form 2025", Date: "2025-07-11", Category: "Defence", Status: "Active"},
	{Title: "SSC MTS Online Form 2025", Date: "2025-07-10", Category: "SSC", Status: "Active"},
	{Title: "Bank of Baroda 2500 LBO Online Form 2025", Date: "2025-07-09", Category: "Banking", Status: "Active"},
	{Title: "UPSC EPFO Online Form 2025", Date: "2025-07-08", Category: "UPSC", Status: "Active"},
	{Title: "CISF 1124 Constable Apply Online", Date: "2025-07-07", Category: "Police", Status: "Active"},
	{Title: "SBI 6238 Technician Vacancy 2025", Date: "2025-07-06", Category: "Banking", Status: "Active"},
}

var AdmitCards = []string{
	"CTET Admit Card 2025",
	"NEET Admit Card 2025",
	"UPSC Sevak Admit Card 2025",
	"JEE Mains Admit Card 2025",
	"IBPS PO Admit Card 2025",
	"SSC MTS Admit Card 2025",
	"Railway Group D Admit Card 2025",
	"UPSC CMS Admit Card 2025",
	"Banking PO Admit Card 2025",
}

var Results = []string{
	"JCI Non Executive (Accounts) Result 2025",
	"IBS Steno, Personal Assistant and Other Posts Result 2025",
	"NHM Sukhikar Assistant Trainee Engineer / Trainee Officer Result 2025",
	"UPSC EPFO Personal Assistant Result 2025",
	"HPSC Assistant Professor Result 2025",
	"SSC Stenographer Grade C and D Exam Result 2025",
	"RSDC Group E (Group-25) Result 2025",
	"UPSSSC Junior Engineer (Civil) Result 2025",
	"UPSC Civil Supt Court Reader Result 2025",
}

var States = []string{
	"Andhra Pradesh", "Assam", "Bihar", "Chhattisgarh", "Delhi", "Gujarat",
	"Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka", "Kerala",
	"Madhya Pradesh", "Maharashtra", "Odisha", "Punjab", "Rajasthan",
	"Tamil Nadu", "Telangana", "Uttar Pradesh", "Uttarakhand", "West Bengal",
}

var stateJobTemplates = []string{
	"%s Police Constable Recruitment 2025",
	"%s Teacher Recruitment 2025",
	"%s Clerk Position 2025",
	"%s Forest Department Jobs 2025",
}

// StateJobs returns the headline postings shown for a selected state. Unknown
// states yield nothing.
func StateJobs(state string) []string {
	if !KnownState(state) {
		return nil
	}
	out := make([]string, 0, len(stateJobTemplates))
	for _, t := range stateJobTemplates {
		out = append(out, fmt.Sprintf(t, state))
	}
	return out
}

func KnownState(state string) bool {
	for _, s := range States {
		if s == state {
			return true
		}
	}
	return false
}

// Panels bundles the fixed side content shared by the home page and the
// panel pages.
type Panels struct {
	NotificationLinks []string
	FeaturedPostings  []ColoredLink
	EducationLinks    []EducationLink
	LatestUpdates     []UpdateItem
	AdmitCards        []string
	Results           []string
	States            []string
	Categories        []job.Category
	EducationLevels   []job.EducationLevel
}

func DefaultPanels() Panels {
	return Panels{
		NotificationLinks: NotificationLinks,
		FeaturedPostings:  FeaturedPostings,
		EducationLinks:    EducationLinks,
		LatestUpdates:     LatestUpdates,
		AdmitCards:        AdmitCards,
		Results:           Results,
		States:            States,
		Categories:        job.Categories,
		EducationLevels:   job.EducationLevels,
	}
}
