package domain

// ApprovalThreshold минимальная доля одобрений для передачи PR менеджеру.
const ApprovalThreshold = 0.70

type ApprovalSummary struct {
	Approved int
	Rejected int
	Total    int
	Ratio    float64
	Eligible bool
}

// SummarizeReviews считает одобрения. PR готов, если все ревью одобрены
// или доля одобрений не меньше ApprovalThreshold. Без ревью PR не готов.
func SummarizeReviews(reviews []*Review) ApprovalSummary {
	var s ApprovalSummary
	for _, r := range reviews {
		s.Total++
		if r.Status == ReviewApproved {
			s.Approved++
		} else {
			s.Rejected++
		}
	}

	if s.Total == 0 {
		return s
	}

	s.Ratio = float64(s.Approved) / float64(s.Total)
	s.Eligible = s.Approved == s.Total || s.Ratio >= ApprovalThreshold
	return s
}
