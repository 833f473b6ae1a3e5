package objectperm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BatchRequest validation", func() {
	valid := BatchOperation{
		Method:     "PUT",
		Permission: "VIEW",
		Form:       GranteeForm{Users: []int64{1}},
	}

	It("accepts PUT and DELETE operations", func() {
		del := valid
		del.Method = "DELETE"
		req := BatchRequest{Operations: []BatchOperation{valid, del}}
		Expect(req.Validate()).To(BeNil())
	})

	It("rejects an empty operation list", func() {
		Expect(BatchRequest{}.Validate()).NotTo(BeNil())
	})

	It("rejects other HTTP methods", func() {
		op := valid
		op.Method = "PATCH"
		Expect(BatchRequest{Operations: []BatchOperation{op}}.Validate()).NotTo(BeNil())
	})

	It("rejects unknown permission kinds", func() {
		op := valid
		op.Permission = "OWN"
		Expect(BatchRequest{Operations: []BatchOperation{op}}.Validate()).NotTo(BeNil())

		op.Permission = "view"
		Expect(BatchRequest{Operations: []BatchOperation{op}}.Validate()).NotTo(BeNil())
	})

	It("rejects non-positive grantee ids", func() {
		op := valid
		op.Form = GranteeForm{Users: []int64{0}}
		Expect(BatchRequest{Operations: []BatchOperation{op}}.Validate()).NotTo(BeNil())

		op.Form = GranteeForm{Groups: []int64{-3}}
		Expect(BatchRequest{Operations: []BatchOperation{op}}.Validate()).NotTo(BeNil())
	})

	It("accepts an operation with no grantees", func() {
		op := valid
		op.Form = GranteeForm{}
		Expect(BatchRequest{Operations: []BatchOperation{op}}.Validate()).To(BeNil())
	})
})
