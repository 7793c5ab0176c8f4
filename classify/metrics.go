package classify

// Metrics summarizes classification quality. Precision, recall and F1 are
// weighted by per-class support, so class imbalance is reflected in the
// aggregate numbers.
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Score compares predicted labels against the truth.
func Score(truth, predicted []int) Metrics {
	if len(truth) == 0 {
		return Metrics{}
	}

	correct := 0
	support := make(map[int]int)
	truePos := make(map[int]int)
	falsePos := make(map[int]int)
	for i, t := range truth {
		support[t]++
		if predicted[i] == t {
			correct++
			truePos[t]++
		} else {
			falsePos[predicted[i]]++
		}
	}

	total := float64(len(truth))
	var precision, recall, f1 float64
	for label, count := range support {
		weight := float64(count) / total

		var p, r float64
		if denom := truePos[label] + falsePos[label]; denom > 0 {
			p = float64(truePos[label]) / float64(denom)
		}
		r = float64(truePos[label]) / float64(count)

		precision += weight * p
		recall += weight * r
		if p+r > 0 {
			f1 += weight * 2 * p * r / (p + r)
		}
	}

	return Metrics{
		Accuracy:  float64(correct) / total,
		Precision: precision,
		Recall:    recall,
		F1:        f1,
	}
}
