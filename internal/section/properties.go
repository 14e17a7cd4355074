package section

// Properties summarises the section for reports.
type Properties struct {
	Width  float64 // mm, bounding box
	Height float64 // mm, bounding box
	Area   float64 // mm²
	Ix     float64 // mm⁴
	Iy     float64 // mm⁴
	Ixy    float64 // mm⁴

	Elements int

	// Reinforcement summary
	MildSteelArea        float64 // mm²
	PrestressedSteelArea float64 // mm²
	RhoMild              float64 // As / Ag
	RhoPrestressed       float64 // Aps / Ag
}

// Properties computes the geometric summary together with the reinforcement
// ratios for the given steel areas.
func (s *CrossSection) Properties(mildArea, prestressedArea float64) Properties {
	box := s.BoundingBox()
	p := Properties{
		Width:                box.Width(),
		Height:               box.Height(),
		Area:                 s.Area,
		Ix:                   s.Ix,
		Iy:                   s.Iy,
		Ixy:                  s.Ixy,
		Elements:             len(s.Elements),
		MildSteelArea:        mildArea,
		PrestressedSteelArea: prestressedArea,
	}
	if s.Area > 0 {
		p.RhoMild = mildArea / s.Area
		p.RhoPrestressed = prestressedArea / s.Area
	}
	return p
}
