package corpus

import (
	"fmt"
	"strings"
)

const testHeader = "name,id,minutes,contributor_id,submitted,tags,nutrition,n_steps,steps,description,ingredients,n_ingredients"

// csvRow 依資料來源欄位順序組出一列 CSV
func csvRow(name, nutrition, steps, ingredients string) string {
	q := func(s string) string { return `"` + strings.ReplaceAll(s, `"`, `""`) + `"` }
	return fmt.Sprintf("%s,1,10,1,2005-01-01,%s,%s,1,%s,desc,%s,3",
		q(name), q("['easy']"), q(nutrition), q(steps), q(ingredients))
}

func csvDoc(rows ...string) string {
	return testHeader + "\n" + strings.Join(rows, "\n") + "\n"
}
