package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// CommunityView renders the drawing board for one community. Rows are the
// initial server-side render; the page keeps itself fresh over a websocket.
func CommunityView(community string, rows []DrawingRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		safeCommunity := escape(community)
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Drawings - `+safeCommunity+`</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">`+safeCommunity+`</span>
        <h1>Drawing board</h1>
        <p>Live view of every active drawing in this community.</p>
      </header>

      <section class="panel">
        <table class="board" id="drawingBoard">
          <thead>
            <tr><th>Drawing</th><th>State</th><th>Entrants</th><th>Remaining</th><th>Winner</th></tr>
          </thead>
          <tbody id="drawingRows">`)
		for _, row := range rows {
			winner := "-"
			if row.Winner > 0 {
				winner = "#" + itoa(row.Winner)
			}
			_, _ = io.WriteString(w, `
            <tr>
              <td><a href="/communities/`+safeCommunity+`/drawings/`+escape(row.Name)+`">`+escape(row.Name)+`</a></td>
              <td>`+escape(row.State)+`</td>
              <td>`+itoa(row.Entrants)+`</td>
              <td>`+itoa(row.Remaining)+`</td>
              <td>`+winner+`</td>
            </tr>`)
		}
		_, _ = io.WriteString(w, `
          </tbody>
        </table>
      </section>
    </main>

    <script>
      const community = `+jsString(community)+`;
      const rowsEl = document.getElementById("drawingRows");
      const proto = window.location.protocol === "https:" ? "wss:" : "ws:";
      const socket = new WebSocket(proto + "//" + window.location.host + "/ws/communities/" + encodeURIComponent(community));
      socket.addEventListener("message", (event) => {
        const data = JSON.parse(event.data);
        rowsEl.innerHTML = "";
        for (const d of data.drawings || []) {
          const tr = document.createElement("tr");
          const link = "/communities/" + encodeURIComponent(community) + "/drawings/" + encodeURIComponent(d.name);
          const winner = d.winner ? "#" + d.winner : "-";
          tr.innerHTML = '<td><a href="' + link + '"></a></td><td></td><td></td><td></td><td></td>';
          tr.children[0].firstChild.textContent = d.name;
          tr.children[1].textContent = d.state;
          tr.children[2].textContent = d.entrants;
          tr.children[3].textContent = d.remaining;
          tr.children[4].textContent = winner;
          rowsEl.appendChild(tr);
        }
      });
    </script>
  </body>
</html>`)
		return nil
	})
}
