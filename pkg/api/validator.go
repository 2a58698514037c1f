package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p PositionPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("coordinates cannot be negative")
	}
	return nil
}

func (p EntityPayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	return nil
}

func (p DeployPayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	if p.X < 0 || p.Y < 0 {
		return errors.New("coordinates cannot be negative")
	}
	return nil
}

func (p PurchasePayload) Validate() error {
	switch p.Kind {
	case "power_up", "map_unlock", "ship_upgrade", "artifact_clue":
	default:
		return errors.New("unknown purchase kind")
	}
	if p.ItemID == "" {
		return errors.New("itemId is required")
	}
	return nil
}

func (p SellPayload) Validate() error {
	if p.Resource == "" {
		return errors.New("resource is required")
	}
	if p.Count <= 0 {
		return errors.New("count must be positive")
	}
	return nil
}
