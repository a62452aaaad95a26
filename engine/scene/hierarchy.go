package scene

import (
	"fmt"

	"github.com/spaghettifunk/anima-scene/engine/core"
)

type ParentLink struct {
	Child  string
	Parent string
}

/**
 * @brief Child to parent name pairs collected while objects are declared
 * and applied once all of them exist. Links keep the order they were first
 * recorded in; recording a child again replaces its parent.
 */
type ParentLinks struct {
	links []ParentLink
	index map[string]int
}

func NewParentLinks() *ParentLinks {
	return &ParentLinks{
		index: make(map[string]int),
	}
}

func (p *ParentLinks) Record(child, parent string) {
	if i, ok := p.index[child]; ok {
		p.links[i].Parent = parent
		return
	}
	p.index[child] = len(p.links)
	p.links = append(p.links, ParentLink{Child: child, Parent: parent})
}

func (p *ParentLinks) Len() int {
	return len(p.links)
}

func (p *ParentLinks) Links() []ParentLink {
	return p.links
}

/**
 * @brief Attaches every recorded child whose parent exists. Objects are
 * linked by reference, so the declaration order of parents and children does
 * not matter and chains of any depth resolve in one pass.
 * A link whose parent has not been declared yet stays pending for a later
 * Resolve; Drain reports whatever is still pending. Any other failure, such
 * as a link that would close a cycle, is reported and leaves the child where
 * it was.
 */
func (p *ParentLinks) Resolve(s *Scene) []error {
	var errs []error
	var pending []ParentLink
	for _, link := range p.links {
		child := s.Find(link.Child)
		if child == nil {
			err := fmt.Errorf("cannot find child '%s' of parent '%s': %w", link.Child, link.Parent, core.ErrNotFound)
			core.LogError(err.Error())
			errs = append(errs, err)
			continue
		}
		parent := s.Find(link.Parent)
		if parent == nil {
			pending = append(pending, link)
			continue
		}
		if err := parent.AddChild(child); err != nil {
			core.LogError(err.Error())
			errs = append(errs, err)
		}
	}
	p.reset(pending)
	return errs
}

// Drain reports every link still waiting for its parent and empties the table.
func (p *ParentLinks) Drain() []error {
	var errs []error
	for _, link := range p.links {
		err := fmt.Errorf("cannot find parent '%s' to child '%s': %w", link.Parent, link.Child, core.ErrUnresolved)
		core.LogError(err.Error())
		errs = append(errs, err)
	}
	p.reset(nil)
	return errs
}

func (p *ParentLinks) reset(links []ParentLink) {
	p.links = links
	p.index = make(map[string]int, len(links))
	for i, link := range links {
		p.index[link.Child] = i
	}
}
