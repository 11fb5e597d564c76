package chartdata_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/chronic-org/chronic/chartdata"
)

var _ = Describe("ChartData Slice", func() {
	var slice *chartdata.Slice

	BeforeEach(func() {
		slice = chartdata.NewSlice()
	})

	It("keeps the previous projection while a pull is in flight", func() {
		slice.PullDataSuccess(chartdata.Payload{
			Symptoms: map[string][]chartdata.SeverityPoint{
				"fatigue": {{Datetime: "2025-08-30T16:00:00.000Z", Severity: 6}},
			},
		})

		slice.PullDataRequest()
		Expect(slice.State().Loading).To(BeTrue())
		Expect(slice.State().Symptoms).To(HaveKey("fatigue"))
	})

	It("replaces the projection wholesale on success", func() {
		slice.PullDataSuccess(chartdata.Payload{
			Symptoms: map[string][]chartdata.SeverityPoint{"fatigue": {}},
			Medications: map[string][]chartdata.CountPoint{
				"LDN": {{Datetime: "2025-08-30", Number: 1}},
			},
		})
		slice.PullDataSuccess(chartdata.Payload{
			Symptoms: map[string][]chartdata.SeverityPoint{"nausea": {}},
		})

		state := slice.State()
		Expect(state.Symptoms).To(HaveKey("nausea"))
		Expect(state.Symptoms).ToNot(HaveKey("fatigue"))
		Expect(state.Medications).To(BeEmpty())
	})

	It("records the error and keeps the stale projection on failure", func() {
		slice.PullDataSuccess(chartdata.Payload{
			Symptoms: map[string][]chartdata.SeverityPoint{"fatigue": {}},
		})

		slice.PullDataRequest()
		slice.PullDataFailure("failed to fetch data")

		state := slice.State()
		Expect(*state.Error).To(Equal("failed to fetch data"))
		Expect(state.Symptoms).To(HaveKey("fatigue"))
		Expect(state.Loading).To(BeFalse())
	})

	It("clears the error when a new pull starts", func() {
		slice.PullDataFailure("failed to fetch data")
		slice.PullDataRequest()
		Expect(slice.State().Error).To(BeNil())
	})
})
