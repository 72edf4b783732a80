// File: internal/model/enum.go
package model

// 工作群組，帳號與品項共用
var WorkingGroups = []string{"Smart Click", "F.E.", "Customs"}

// 品項分類
var Categories = []string{"RPM", "Utility Panel", "Handheld", "Other"}

func IsWorkingGroup(s string) bool { return contains(WorkingGroups, s) }

func IsCategory(s string) bool { return contains(Categories, s) }

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
