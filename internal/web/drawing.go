package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func DrawingView(community, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		safeCommunity := escape(community)
		safeName := escape(name)
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`+safeName+` - `+safeCommunity+`</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">`+safeCommunity+`</span>
        <h1>`+safeName+`</h1>
        <p id="drawingState">Loading...</p>
      </header>

      <section class="panel">
        <h2>Entries</h2>
        <table class="board">
          <thead>
            <tr><th>#</th><th>Users</th><th>Status</th></tr>
          </thead>
          <tbody id="entryRows"></tbody>
        </table>
      </section>

      <section class="panel">
        <h2>Winner</h2>
        <p id="winnerLine">No winner yet.</p>
      </section>
    </main>

    <script>
      const community = `+jsString(community)+`;
      const drawing = `+jsString(name)+`;
      const base = "/api/communities/" + encodeURIComponent(community) + "/drawings/" + encodeURIComponent(drawing);

      async function refresh() {
        const statusRes = await fetch(base);
        if (!statusRes.ok) {
          document.getElementById("drawingState").textContent = "Drawing not found.";
          return;
        }
        const status = await statusRes.json();
        document.getElementById("drawingState").textContent =
          status.state + " - " + status.remaining + " of " + status.entrants + " entrants remaining";

        const entriesRes = await fetch(base + "/entries");
        if (entriesRes.ok) {
          const data = await entriesRes.json();
          const rowsEl = document.getElementById("entryRows");
          rowsEl.innerHTML = "";
          for (const entry of data.entries || []) {
            const tr = document.createElement("tr");
            tr.innerHTML = "<td></td><td></td><td></td>";
            tr.children[0].textContent = "#" + entry.entrant_number;
            tr.children[1].textContent = entry.users.join(", ");
            tr.children[2].textContent = entry.eliminated ? "eliminated" : "in";
            rowsEl.appendChild(tr);
          }
        }

        if (status.winner) {
          const winnerRes = await fetch(base + "/winner");
          if (winnerRes.ok) {
            const winner = await winnerRes.json();
            document.getElementById("winnerLine").textContent =
              "Entrant #" + winner.entrant_number + ": " + winner.users.join(", ");
          }
        }
      }

      refresh();
      const proto = window.location.protocol === "https:" ? "wss:" : "ws:";
      const socket = new WebSocket(proto + "//" + window.location.host + "/ws/communities/" + encodeURIComponent(community));
      socket.addEventListener("message", refresh);
    </script>
  </body>
</html>`)
		return nil
	})
}
