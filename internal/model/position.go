package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Position is a board position applicants can select. Positions are read-only reference data.
type Position struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Questions   []string `yaml:"questions" json:"questions"`
	IsActive    bool     `yaml:"isActive" json:"isActive"`
}

// Catalog is an ordered, id-indexed set of positions
type Catalog struct {
	positions []Position
	byID      map[string]Position
}

// NewCatalog builds a catalog, rejecting empty or duplicate ids
func NewCatalog(positions []Position) (*Catalog, error) {
	c := &Catalog{
		positions: make([]Position, 0, len(positions)),
		byID:      make(map[string]Position, len(positions)),
	}
	for _, p := range positions {
		if p.ID == "" {
			return nil, fmt.Errorf("position %q has no id", p.Title)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate position id %q", p.ID)
		}
		c.positions = append(c.positions, p)
		c.byID[p.ID] = p
	}
	return c, nil
}

// LoadCatalog reads a YAML list of positions from path.
// An empty path returns the built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return NewCatalog(DefaultPositions)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read positions file: %w", err)
	}

	var positions []Position
	if err := yaml.Unmarshal(raw, &positions); err != nil {
		return nil, fmt.Errorf("parse positions file: %w", err)
	}
	return NewCatalog(positions)
}

// Get returns the position with the given id
func (c *Catalog) Get(id string) (Position, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Active returns active positions in catalog order
func (c *Catalog) Active() []Position {
	active := make([]Position, 0, len(c.positions))
	for _, p := range c.positions {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active
}

func position(id, title, description string, questions ...string) Position {
	return Position{ID: id, Title: title, Description: description, Questions: questions, IsActive: true}
}

// DefaultPositions is the built-in board position catalog
var DefaultPositions = []Position{
	position("chairperson", "Chairperson",
		"Lead the BIS Standards Club VIT as the primary representative. Oversee all club operations, strategic planning, and ensure the club achieves its goals and objectives.",
		"Why do you want to be the Chairperson of BIS Standards Club? What vision do you have for the club? (300-500 words)",
		"Describe your leadership experience. How have you handled challenging situations as a leader?",
		"How would you ensure effective coordination between all club departments and members?",
		"What initiatives would you propose to enhance the club's reputation and impact at VIT?",
	),
	position("vice-chairperson", "Vice Chairperson",
		"Support the Chairperson in leading the club. Assist in strategic decision-making, represent the club in the Chairperson's absence, and help coordinate cross-functional activities.",
		"Why do you want to be the Vice Chairperson of BIS Standards Club? (300-500 words)",
		"How would you support the Chairperson while bringing your own ideas to the table?",
		"Describe a situation where you successfully collaborated with others to achieve a common goal.",
		"What qualities do you believe are essential for a Vice Chairperson, and how do you embody them?",
	),
	position("secretary", "Secretary",
		"Manage official club communications, maintain records, coordinate meetings, and ensure smooth administrative operations of the club.",
		"Why do you want to be the Secretary of BIS Standards Club? (300-500 words)",
		"Describe your experience with administrative tasks, documentation, and organizational skills.",
		"How would you ensure effective communication within the club and with external stakeholders?",
		"What systems would you implement to streamline club operations and record-keeping?",
	),
	position("co-secretary", "Co-Secretary",
		"Assist the Secretary in managing communications, documentation, and administrative tasks. Help coordinate between different departments.",
		"Why do you want to be the Co-Secretary of BIS Standards Club? (300-500 words)",
		"How would you support the Secretary in managing club operations?",
		"Describe your attention to detail and organizational capabilities with examples.",
		"What ideas do you have to improve internal communication within the club?",
	),
	position("technical-head", "Technical Head",
		"Lead technical initiatives, oversee development projects, conduct technical workshops, and mentor team members in technical skills.",
		"Why do you want to be the Technical Head of BIS Standards Club? (300-500 words)",
		"What technical skills and programming languages are you proficient in? Describe a project you have led or contributed significantly to.",
		"How would you approach mentoring junior members and conducting technical workshops?",
		"What innovative technical initiatives would you propose for the club?",
	),
	position("creative-head", "Creative Head",
		"Drive creative direction for all club activities. Conceptualize innovative ideas for events, campaigns, and content that engage the audience.",
		"Why do you want to be the Creative Head of BIS Standards Club? (300-500 words)",
		"Share examples of creative projects or campaigns you have conceptualized or executed.",
		"How would you ensure fresh and innovative ideas for club activities throughout the year?",
		"Describe your creative process when brainstorming for a major event or campaign.",
	),
	position("design-head", "Design Head",
		"Create visual designs for events, social media, and promotional materials. Maintain brand consistency and lead the design team.",
		"Why do you want to be the Design Head of BIS Standards Club? (300-500 words)",
		"What design tools are you proficient in? Share your portfolio or examples of your design work.",
		"How would you ensure brand consistency across all club materials?",
		"Describe your design process when creating materials for a major event.",
	),
	position("events-head", "Events Head",
		"Plan, organize, and execute club events, workshops, and seminars. Coordinate logistics, manage timelines, and ensure successful event delivery.",
		"Why do you want to be the Events Head of BIS Standards Club? (300-500 words)",
		"Describe your previous experience in event management or organizing activities.",
		"How would you plan and execute a large-scale technical event with 500+ attendees?",
		"What creative event ideas would you bring to the club?",
	),
	position("management-head", "Management Head",
		"Oversee club operations, resource allocation, and project management. Ensure efficient workflow and coordination between departments.",
		"Why do you want to be the Management Head of BIS Standards Club? (300-500 words)",
		"Describe your experience with project management and team coordination.",
		"How would you handle resource constraints while managing multiple club activities?",
		"What management frameworks or tools would you implement to improve club efficiency?",
	),
	position("projects-head", "Projects Head",
		"Lead and manage club projects from conception to completion. Coordinate with technical and non-technical teams to deliver impactful projects.",
		"Why do you want to be the Projects Head of BIS Standards Club? (300-500 words)",
		"Describe a project you have successfully led or been a key contributor to.",
		"How would you prioritize and manage multiple ongoing projects simultaneously?",
		"What types of projects would you propose to enhance the club's portfolio?",
	),
	position("hr-head", "HR Head",
		"Manage member recruitment, onboarding, and retention. Foster a positive club culture and handle member-related concerns.",
		"Why do you want to be the HR Head of BIS Standards Club? (300-500 words)",
		"How would you approach recruiting and onboarding new members effectively?",
		"Describe strategies you would implement to maintain high member engagement and morale.",
		"How would you handle conflicts or issues among club members?",
	),
	position("outreach-head", "Outreach Head",
		"Build and maintain relationships with sponsors, partners, and other organizations. Expand the club's network and collaboration opportunities.",
		"Why do you want to be the Outreach Head of BIS Standards Club? (300-500 words)",
		"Describe your networking and communication skills with examples.",
		"How would you approach potential sponsors and industry partners?",
		"What strategies would you use to expand the club's external collaborations?",
	),
	position("editorial-head", "Editorial Head",
		"Oversee all written content including newsletters, blogs, articles, and publications. Ensure high-quality and engaging written communication.",
		"Why do you want to be the Editorial Head of BIS Standards Club? (300-500 words)",
		"Share samples of your writing (blogs, articles, newsletters) or describe your writing experience.",
		"How would you create engaging content about technical standards and industry topics?",
		"What content strategy would you implement to enhance the club's written presence?",
	),
	position("development-head", "Development Head",
		"Lead software development initiatives, manage the club's digital platforms, and oversee technical product development.",
		"Why do you want to be the Development Head of BIS Standards Club? (300-500 words)",
		"What programming languages and frameworks are you proficient in? Share your GitHub profile or project portfolio.",
		"Describe a software project you have developed or contributed to significantly.",
		"What digital products or platforms would you propose to build for the club?",
	),
	position("publicity-head", "Publicity Head",
		"Manage social media accounts, develop marketing strategies, and increase brand visibility. Drive engagement and reach across platforms.",
		"Why do you want to be the Publicity Head of BIS Standards Club? (300-500 words)",
		"Describe your experience with social media management and marketing.",
		"How would you increase the club's reach and engagement on various platforms?",
		"What marketing campaign would you create to attract more members to the club?",
	),
	position("finance-head", "Finance Head",
		"Manage club finances, budgets, and transactions. Ensure transparent financial reporting and efficient resource allocation.",
		"Why do you want to be the Finance Head of BIS Standards Club? (300-500 words)",
		"Describe your experience with financial management, budgeting, or accounting.",
		"How would you ensure transparent and efficient management of club funds?",
		"What budget allocation strategy would you propose for various club activities?",
	),
}
